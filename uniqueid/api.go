package uniqueid

//go:generate mockgen -source=api.go -destination=gen_GeneratorMock.go -package=uniqueid github.com/CODEX19/FarmLink-Africa/uniqueid Generator

// Generator creates identifiers for advice requests. They double as Cloud Tasks task
// names, so they only contain letters and digits.
type Generator interface {
	Generate() string
}
