package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateNanoID() (string, error) {
	return gonanoid.New()
}

// ObjectName строит имя объекта в хранилище: <prefix>/<nanoid><ext>
func ObjectName(prefix, ext string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), id, strings.ToLower(ext)), nil
}
