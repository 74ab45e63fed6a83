package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"dingdong-api/core/constants"
)

// GenerateID returns a short url-safe random identifier.
func GenerateID() (string, error) {
	return gonanoid.New(7)
}

// GenerateParticipantCode returns the code participants use to join a project.
func GenerateParticipantCode() (string, error) {
	return gonanoid.Generate("ABCDEFGHIJKLMNOPQRSTUVWXYZ", constants.ParticipantCodeLength)
}

// GenerateVerificationCode returns a numeric code for email verification.
func GenerateVerificationCode() (string, error) {
	return gonanoid.Generate("0123456789", constants.VerificationCodeLen)
}
