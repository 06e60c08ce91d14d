package httpclient

import "context"

// Decode unmarshals a JSON envelope into a new T.
func Decode[T any](env *Envelope) (T, error) {
	var result T
	err := env.Decode(&result)

	return result, err
}

func PerformJSON[T any](ctx context.Context, c *Client, req *Request, opts ...RequestOption) (T, error) {
	env, err := c.PerformWithContent(ctx, req, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return Decode[T](env)
}

// PerformOptionalJSON returns ok=false for an empty body.
func PerformOptionalJSON[T any](
	ctx context.Context,
	c *Client,
	req *Request,
	opts ...RequestOption,
) (T, bool, error) {
	var zero T

	env, err := c.Perform(ctx, req, opts...)
	if err != nil {
		return zero, false, err
	}

	if env.IsEmpty() {
		return zero, false, nil
	}

	result, err := Decode[T](env)
	if err != nil {
		return zero, false, err
	}

	return result, true, nil
}

func AsyncJSON[T any](ctx context.Context, a *AsyncClient, req *Request, opts ...RequestOption) *Future[T] {
	return Async(ctx, a, func(ctx context.Context) (T, error) {
		return PerformJSON[T](ctx, a.client, req, opts...)
	})
}
