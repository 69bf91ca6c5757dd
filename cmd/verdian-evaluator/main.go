// Command verdian-evaluator serves pricing, keywords and topic matching
package main

import (
	"context"

	"verdian/internal/bootstrap"
	evaluator "verdian/internal/services/evaluator/module"
	meta "verdian/internal/services/meta/module"
)

const service = "verdian-evaluator"

func main() {
	deps := bootstrap.Init(service)
	l := deps.Log

	gen := bootstrap.Generator(context.Background(), deps)
	so, mo := bootstrap.ServerOptions(deps, "8000")

	eval := evaluator.New(deps, gen)
	srv := bootstrap.NewServer(deps, so, mo,
		eval,
		meta.New(deps, service),
	)

	l.Info().Str("addr", srv.Addr()).Bool("gemini", eval.GenerationEnabled()).Msg("evaluator listening")
	if err := bootstrap.Serve(srv); err != nil {
		l.Fatal().Err(err).Msg("evaluator server exited")
	}
	l.Info().Msg("evaluator stopped")
}
