package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/http/client"
	service "github.com/subratasarker952/waitumusic-sub016/internal/app"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/stageplot"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
	"github.com/subratasarker952/waitumusic-sub016/pkg/logger"
)

func newRenderCommand() *cobra.Command {
	var (
		file         string
		templatePath string
		serverURL    string
		capacity     int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Allocate channels for a request file and print the input list",
		Long: "Reads an allocation request (YAML or JSON) and prints the numbered input list.\n" +
			"With --url the request is sent to a running server instead of being allocated locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(cmd, file)
			if err != nil {
				return err
			}

			var resp types.AllocationResponse
			if serverURL != "" {
				resp, err = client.New(serverURL).Allocate(cmd.Context(), req)
			} else {
				svc := service.New(
					service.WithLogger(logger.Nop()),
					service.WithCapacity(capacity),
					service.WithTemplatePath(templatePath),
				)
				if err = svc.Start(cmd.Context()); err != nil {
					return err
				}
				defer svc.Stop()
				resp, err = svc.Allocate(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Request file (YAML or JSON); - reads stdin")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Mixer template file used when the request has no mixer")
	cmd.Flags().StringVar(&serverURL, "url", "", "Allocate on a running server, e.g. http://localhost:9080")
	cmd.Flags().IntVar(&capacity, "capacity", stageplot.DefaultCapacity, "Number of mixer inputs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readRequest(cmd *cobra.Command, path string) (types.AllocationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return types.AllocationRequest{}, fmt.Errorf("read request: %w", err)
	}

	var req types.AllocationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return types.AllocationRequest{}, fmt.Errorf("parse request %s: %w", path, err)
	}
	return req, nil
}

func printResponse(w io.Writer, resp types.AllocationResponse) {
	list := resp.InputList
	title := "Input list"
	if resp.BookingID != "" {
		title += " for " + resp.BookingID
	}
	if resp.Template != "" {
		title += " (" + resp.Template + ")"
	}
	fmt.Fprintf(w, "%s, %d-channel mixer\n", title, list.Capacity)

	headers := []string{"Ch", "Family", "Input", "Performer", "Type", "48V", "Notes"}
	aligns := []columnAlignment{alignRight}
	fmt.Fprintln(w, renderTable(headers, rowsOf(list.Rows), aligns))

	if len(list.Overflow) > 0 {
		fmt.Fprintln(w, "\nOver capacity")
		fmt.Fprintln(w, renderTable(headers, rowsOf(list.Overflow), aligns))
	}
	if len(list.Unused) > 0 {
		fmt.Fprintln(w, "\nNot used this event")
		fmt.Fprintln(w, renderTable(headers, rowsOf(list.Unused), aligns))
	}
	if len(list.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings")
		for _, warn := range list.Warnings {
			fmt.Fprintf(w, "  - [%s] %s\n", warn.Kind, warn.Message)
		}
	}
}

func rowsOf(rows []stageplot.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		ch := ""
		if r.Channel > 0 {
			ch = strconv.Itoa(r.Channel)
		}
		performer := r.Assignee
		if performer == "" {
			performer = "-"
		}
		phantom := ""
		if r.Phantom {
			phantom = "yes"
		}
		out = append(out, []string{ch, r.Family.String(), r.Label, performer, string(r.InputType), phantom, r.Notes})
	}
	return out
}
