package syntax

import (
	"context"
	"errors"
)

type chain []Client

// Chain returns a client that tries each client in order, moving on only
// when one reports ErrUnsupportedLanguage. Any other result, success or
// failure, is final.
func Chain(clients ...Client) Client {
	return chain(clients)
}

func (c chain) Highlight(ctx context.Context, content, language string) (Result, error) {
	err := error(ErrUnsupportedLanguage)
	for _, client := range c {
		var res Result
		res, err = client.Highlight(ctx, content, language)
		if !errors.Is(err, ErrUnsupportedLanguage) {
			return res, err
		}
	}
	return Result{}, err
}
