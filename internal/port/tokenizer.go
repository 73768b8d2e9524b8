package port

import (
	"context"
	"io"
)

type Tokenizer interface {
	// Scan streams r and calls fn for each word token in order.
	Scan(ctx context.Context, r io.Reader, fn func(token string)) error
}
