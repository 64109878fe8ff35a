package uniqueid

import (
	"strings"

	"github.com/google/uuid"
)

type generator struct{}

func NewGenerator() Generator {
	return &generator{}
}

func (generator) Generate() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
