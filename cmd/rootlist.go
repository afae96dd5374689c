package main

import (
	"context"
	"fmt"

	"github.com/mkeke/spotify-library-grabber/internal/shared"
	"github.com/urfave/cli/v3"
)

// RootlistToken extracts the rootlist bearer token from a browser
// "Copy as cURL" command and stores it in the config file.
//
// The token is short-lived; expect to re-run this before exports that
// should preserve playlist folders.
func (r *Runner) RootlistToken(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	configPath := cmd.String("config")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for rootlist token")

	var auth *shared.CurlAuth
	var err error

	if curlFile != "" {
		auth, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		auth, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	config := r.loadConfig(cmd)
	config.Credentials.Rootlist.Token = auth.Bearer

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.config = config
	r.writePlain("✓ Rootlist token saved to %s\n", configPath)
	r.writePlain("Note: the token is short-lived; re-run this command when exports stop resolving folders.\n")

	return nil
}
