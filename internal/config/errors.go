package config

import "errors"

var (
	ErrMissingEnv      = errors.New("missing required environment variables")
	ErrUnknownStrategy = errors.New("unknown splitter strategy")
	ErrInvalidParam    = errors.New("invalid splitter parameter")
	ErrNoDocuments     = errors.New("config declares no documents")
)
