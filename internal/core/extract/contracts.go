package extract

import (
	"context"

	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/textlayer"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (textlayer.Result, error)
	ExtractBytes(ctx context.Context, name string, data []byte) (textlayer.Result, error)
}

// FieldExtractor is Stage 2: text -> boleto fields.
type FieldExtractor interface {
	Extract(text string) boleto.Result
	Validate(r boleto.Result) error
}

var (
	_ TextExtractor  = (*textlayer.Extractor)(nil)
	_ FieldExtractor = (*boleto.Engine)(nil)
)
