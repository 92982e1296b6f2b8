package gostory

import (
	"github.com/datar-psa/gostory/api"
)

type LLMGenerator = api.LLMGenerator
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult
type GenerationError = api.GenerationError
type ErrorKind = api.ErrorKind

const (
	KindTransport   = api.KindTransport
	KindRemote      = api.KindRemote
	KindEmptyResult = api.KindEmptyResult
)

var ModerationCategories = api.ModerationCategories
