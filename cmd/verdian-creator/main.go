// Command verdian-creator serves the authoring assistant
package main

import (
	"context"

	"verdian/internal/bootstrap"
	creator "verdian/internal/services/creator/module"
	meta "verdian/internal/services/meta/module"
)

const service = "verdian-creator"

func main() {
	deps := bootstrap.Init(service)
	l := deps.Log

	gen := bootstrap.Generator(context.Background(), deps)
	so, mo := bootstrap.ServerOptions(deps, "8082")

	assist := creator.New(deps, gen)
	srv := bootstrap.NewServer(deps, so, mo,
		assist,
		meta.New(deps, service),
	)

	l.Info().Str("addr", srv.Addr()).Bool("gemini", assist.GenerationEnabled()).Msg("creator listening")
	if err := bootstrap.Serve(srv); err != nil {
		l.Fatal().Err(err).Msg("creator server exited")
	}
	l.Info().Msg("creator stopped")
}
