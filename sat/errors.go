package sat

import "errors"

var (
	// ErrModelNotFound indicates the ONNX model file doesn't exist.
	ErrModelNotFound = errors.New("sat: model file not found")

	// ErrInvalidModel indicates the ONNX model couldn't be loaded.
	ErrInvalidModel = errors.New("sat: invalid model")

	// ErrTokenizerFailed indicates the SentencePiece tokenizer couldn't be loaded.
	ErrTokenizerFailed = errors.New("sat: tokenizer failed")
)
