package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/yleoer/abbr/pkg/abbr"
	"github.com/yleoer/abbr/pkg/config"
	"github.com/yleoer/abbr/pkg/database"
	"github.com/yleoer/abbr/pkg/util"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage custom special-case phrases",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <phrase> <abbreviation>",
			Short: "Add or replace a phrase",
			Args:  cobra.ExactArgs(2),
			RunE: withStore(func(cmd *cobra.Command, store database.PhraseStore, args []string) error {
				return store.AddPhrase(args[0], strings.ToUpper(args[1]))
			}),
		},
		&cobra.Command{
			Use:   "remove <phrase>",
			Short: "Remove a phrase",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, store database.PhraseStore, args []string) error {
				removed, err := store.RemovePhrase(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return errors.Newf("phrase %s not found", args[0])
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List custom and builtin phrases",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, store database.PhraseStore, args []string) error {
				phrases, err := store.ListPhrases()
				if err != nil {
					return err
				}
				for _, p := range phrases {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tcustom\n", p.Phrase, p.Abbreviation)
				}
				custom := database.PhraseMap(phrases)
				builtin := abbr.BuiltinSpecialCases().Entries()
				keys := make([]string, 0, len(builtin))
				for phrase := range builtin {
					if _, ok := custom[phrase]; !ok {
						keys = append(keys, phrase)
					}
				}
				sort.Strings(keys)
				for _, phrase := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tbuiltin\n", phrase, builtin[phrase])
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Import \"phrase abbreviation\" lines from a UTF-8 or GBK file",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, store database.PhraseStore, args []string) error {
				entries, err := readPhraseFile(args[0])
				if err != nil {
					return err
				}
				for _, e := range entries {
					if err := store.AddPhrase(e[0], e[1]); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d phrases\n", len(entries))
				return nil
			}),
		},
	)
	return cmd
}

// withStore 打开词库数据库后执行子命令
func withStore(fn func(*cobra.Command, database.PhraseStore, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		store, err := database.NewSQLiteStore(cfg.DBPath, newLogger(os.Stderr))
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, store, args)
	}
}

// readPhraseFile 每行 "词条 缩写"，空行和 # 开头的行忽略；先整体校验再写入
func readPhraseFile(path string) ([][2]string, error) {
	text, err := util.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	var entries [][2]string
	for i, line := range util.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Newf("%s:%d: expected \"phrase abbreviation\", got %q", path, i+1, line)
		}
		phrase, abbreviation := fields[0], strings.ToUpper(fields[1])
		if err := abbr.ValidatePhrase(phrase, abbreviation); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, i+1)
		}
		entries = append(entries, [2]string{phrase, abbreviation})
	}
	return entries, nil
}
