package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/http/client"
	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/templatefile"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/mixer"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

func newTemplateCommand() *cobra.Command {
	var (
		file      string
		serverURL string
		drumKit   bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a mixer template as YAML",
		Long: "Prints the built-in standard template, a validated template file, or the\n" +
			"default template of a running server. The output can be edited and passed back\n" +
			"as a request's mixer or via render --template.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg model.MixerConfig
				err error
			)
			switch {
			case file != "":
				cfg, err = templatefile.Load(file)
			case serverURL != "":
				cfg, err = client.New(serverURL).DefaultTemplate(cmd.Context())
			default:
				cfg = mixer.Default()
			}
			if err != nil {
				return err
			}

			if drumKit {
				for i, g := range cfg.Groups {
					if f, perr := model.ParseFamily(g.Family); perr == nil && f == model.FamilyDrums {
						cfg.Groups[i] = mixer.DrumKit("drum")
					}
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Validate and print this template file")
	cmd.Flags().StringVar(&serverURL, "url", "", "Fetch the default template of a running server")
	cmd.Flags().BoolVar(&drumKit, "drum-kit", false, "Replace the drums group with the eight-input basic kit")

	return cmd
}
