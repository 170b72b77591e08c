// Package cmd implements the mdp command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwidmer/mdp/internal/config"
	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/lexer"
	"github.com/mwidmer/mdp/internal/reader"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mdp",
	Short: "Parse and query markdown diaries",
	Long: `mdp parses a diary, a markdown-like document whose top-level
sections are date headings, and answers questions about it:

  tags     list every @tag with its occurrence count
  search   find date sections by tag (AND/OR combinations)
  tasks    list TODO/DOING/REVIEW/DONE markers
  tree     visualize the token tree
  serve    expose the same views over HTTP

Diaries can be read from .md, .txt, .html, .docx and .pdf files.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "defaults file (default: ~/.mdp.yaml)")
}

// defaults loads the CLI defaults file once per invocation.
func defaults() config.Defaults {
	d, err := config.LoadDefaults(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return d
}

// resolveInput picks the diary path: explicit argument first, then the
// defaults file.
func resolveInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if d := defaults().Diary; d != "" {
		return d, nil
	}
	return "", fmt.Errorf("no diary file given (pass a path or set 'diary' in ~/.mdp.yaml)")
}

// loadTree reads, lexes and builds one diary.
func loadTree(path string) (*doctree.Tree, error) {
	text, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return doctree.Build(lexer.Lex(text)), nil
}

// writeOutput optionally mirrors command output to a file.
func writeOutput(path, content string) error {
	if path == "" {
		return nil
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
