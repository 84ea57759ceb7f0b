package testdata

import (
	"embed"
	"path"
)

//go:embed off/*.off
var documents embed.FS

// MustReadOFF returns the content of an embedded OFF document such as "cube.off".
func MustReadOFF(name string) string {
	data, err := documents.ReadFile(path.Join("off", name))
	if err != nil {
		panic(err)
	}

	return string(data)
}
