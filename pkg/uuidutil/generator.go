package uuidutil

import "github.com/google/uuid"

func New() string {
	return uuid.New().String()
}

// Deterministic derives the same id for the same name every time. Used for
// notification keys so repeated emissions collapse instead of duplicating.
func Deterministic(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
