package common

import (
	"context"
)

type contextKey int

const (
	configKey contextKey = iota
)

// Attaches global configuration to the context, so it's accessible from every component
func SetConfig(ctx context.Context, config interface{}) context.Context {
	return context.WithValue(ctx, configKey, config)
}

func GetConfig(ctx context.Context) interface{} {
	return ctx.Value(configKey)
}
