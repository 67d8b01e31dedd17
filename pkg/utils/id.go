package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const sessionIDLength = 32

// GenerateSessionID returns an unguessable console session ID.
func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, sessionIDLength)
}
