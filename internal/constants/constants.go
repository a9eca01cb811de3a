package constants

const (
	// Context keys set by the authentication gate
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
	ContextKeyTask  = "task"

	BcryptCost = 8

	MinNameLength        = 3
	MinPasswordLength    = 8
	MaxPasswordLength    = 20
	MinAge               = 13
	DefaultAge           = 18
	MinDescriptionLength = 3
	MaxDescriptionLength = 35

	AvatarFormField = "userAvatar"
	MaxAvatarBytes  = 1000000
	AvatarSize      = 250
)
