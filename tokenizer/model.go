package tokenizer

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// PieceType is the SentencePiece piece type.
type PieceType int32

// Piece types as defined in sentencepiece_model.proto.
const (
	PieceNormal      PieceType = 1
	PieceUnknown     PieceType = 2
	PieceControl     PieceType = 3
	PieceUserDefined PieceType = 4
	PieceUnused      PieceType = 5
	PieceByte        PieceType = 6
)

// ModelType is the SentencePiece training algorithm.
type ModelType int32

// Model types as defined in sentencepiece_model.proto.
const (
	ModelUnigram ModelType = 1
	ModelBPE     ModelType = 2
	ModelWord    ModelType = 3
	ModelChar    ModelType = 4
)

// Field numbers in sentencepiece_model.proto.
const (
	fieldModelPieces         protowire.Number = 1
	fieldModelTrainerSpec    protowire.Number = 2
	fieldModelNormalizerSpec protowire.Number = 3

	fieldPiecePiece protowire.Number = 1
	fieldPieceScore protowire.Number = 2
	fieldPieceType  protowire.Number = 3

	fieldTrainerModelType protowire.Number = 3

	fieldNormalizerName protowire.Number = 1
)

var errMalformed = errors.New("malformed protobuf")

// Piece represents a vocabulary piece from the model.
type Piece struct {
	Piece string
	Score float32
	Type  PieceType
}

// Model represents a loaded SentencePiece model.
type Model struct {
	Pieces         []Piece
	ModelType      ModelType
	NormalizerName string
}

// LoadModel loads a SentencePiece model from a .model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	return m, nil
}

// ParseModel decodes a serialized SentencePiece ModelProto. Only the fields
// needed for unigram tokenization are kept.
func ParseModel(data []byte) (*Model, error) {
	m := &Model{ModelType: ModelUnigram}
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldModelPieces && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p, err := parsePiece(v)
			if err != nil {
				return 0, fmt.Errorf("piece %d: %w", len(m.Pieces), err)
			}
			m.Pieces = append(m.Pieces, p)
			return n, nil

		case num == fieldModelTrainerSpec && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			mt, err := parseTrainerSpec(v)
			if err != nil {
				return 0, fmt.Errorf("trainer spec: %w", err)
			}
			if mt != 0 {
				m.ModelType = mt
			}
			return n, nil

		case num == fieldModelNormalizerSpec && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			name, err := parseNormalizerSpec(v)
			if err != nil {
				return 0, fmt.Errorf("normalizer spec: %w", err)
			}
			m.NormalizerName = name
			return n, nil
		}
		return skip(num, typ, b)
	})
	if err != nil {
		return nil, err
	}
	if len(m.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", errMalformed)
	}
	return m, nil
}

func parsePiece(data []byte) (Piece, error) {
	p := Piece{Type: PieceNormal}
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPiecePiece && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p.Piece = string(v)
			return n, nil
		case num == fieldPieceScore && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p.Score = math.Float32frombits(v)
			return n, nil
		case num == fieldPieceType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p.Type = PieceType(v)
			return n, nil
		}
		return skip(num, typ, b)
	})
	return p, err
}

func parseTrainerSpec(data []byte) (ModelType, error) {
	var mt ModelType
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldTrainerModelType && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			mt = ModelType(v)
			return n, nil
		}
		return skip(num, typ, b)
	})
	return mt, err
}

func parseNormalizerSpec(data []byte) (string, error) {
	var name string
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldNormalizerName && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			name = string(v)
			return n, nil
		}
		return skip(num, typ, b)
	})
	return name, err
}

// walk calls fn for every field in a serialized message. fn consumes the
// field value and returns the number of bytes it used.
func walk(data []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %w", errMalformed, protowire.ParseError(n))
		}
		data = data[n:]

		m, err := fn(num, typ, data)
		if err != nil {
			return fmt.Errorf("%w: field %d: %w", errMalformed, num, err)
		}
		data = data[m:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
