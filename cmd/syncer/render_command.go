package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/storage/jsonfile"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var uid int64

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Regenerate documents and the README from stored state without fetching",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cfg)

			registry, err := buildRegistry(cfg)
			if err != nil {
				return fmt.Errorf("build parsers: %w", err)
			}
			renderer, err := buildRenderer(cfg, registry.Identities(), logger)
			if err != nil {
				return err
			}

			identities := registry.Identities()
			if uid != 0 {
				p, ok := registry.Lookup(uid)
				if !ok {
					return fmt.Errorf("uploader %d is not tracked", uid)
				}
				identities = []domain.Identity{p.Identity()}
			}

			written := 0
			for _, identity := range identities {
				snap, err := jsonfile.ReadSnapshot(cfg.Paths.StateDir, identity)
				if err != nil {
					return fmt.Errorf("read state of %d: %w", identity.ID, err)
				}
				mapper, err := jsonfile.OpenAidMapper(cfg.Paths.StateDir, identity.ID)
				if err != nil {
					return fmt.Errorf("open aid mapper of %d: %w", identity.ID, err)
				}
				paths, err := renderer.RenderIdentity(snap, mapper)
				if err != nil {
					return fmt.Errorf("render %d: %w", identity.ID, err)
				}
				written += len(paths)
			}

			if err := renderer.RenderIndex(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d documents\n", written)
			return nil
		},
	}

	cmd.Flags().Int64Var(&uid, "uid", 0, "Only render documents of this uploader")
	return cmd
}
