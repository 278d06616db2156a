// Command formctrl-lint checks form controller configuration files for
// structural problems before they reach a running host: missing required
// keys, unknown permission actions, deprecated message placement, and close
// navigation that silently resolves to no redirect.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formctrl/pkg/access"
	"github.com/goliatone/go-formctrl/pkg/config"
	"github.com/goliatone/go-formctrl/pkg/messages"
)

type violation struct {
	file     string
	location string
	message  string
}

var knownActions = []string{
	access.ActionCreate,
	access.ActionUpdate,
	access.ActionDelete,
	access.ActionPreview,
}

var messageNames = []string{
	messages.NotFound,
	messages.FlashCreate,
	messages.FlashUpdate,
	messages.FlashDelete,
	messages.FlashSave,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form controller configuration files (JSON or YAML).\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Parse(raw)
	if err != nil {
		var missing *config.MissingKeyError
		if errors.As(err, &missing) {
			return []violation{{
				file:     path,
				location: missing.Key,
				message:  "required key is missing",
			}}, nil
		}
		return nil, err
	}

	var result []violation
	result = append(result, lintPermissions(path, cfg)...)
	result = append(result, lintDeprecatedMessages(path, cfg)...)
	result = append(result, lintCloseRedirects(path, cfg)...)
	return result, nil
}

// lintPermissions flags permission entries keyed by an action name the gate
// never consults.
func lintPermissions(file string, cfg *config.Config) []violation {
	var result []violation
	for _, key := range permissionKeys(cfg) {
		if !isKnownAction(key) {
			result = append(result, violation{
				file:     file,
				location: "permissions." + key,
				message:  fmt.Sprintf("unknown action %q (known: %s)", key, strings.Join(knownActions, ", ")),
			})
		}
	}
	return result
}

func permissionKeys(cfg *config.Config) []string {
	raw := cfg.Resolve("permissions", nil)
	section, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isKnownAction(key string) bool {
	for _, action := range knownActions {
		if key == action {
			return true
		}
	}
	return false
}

// lintDeprecatedMessages flags context-local message keys that should live
// under customMessages. The resolver still honours them, but only as a
// backward-compatibility step in its chain.
func lintDeprecatedMessages(file string, cfg *config.Config) []violation {
	var result []violation
	for _, ctx := range lintContexts(cfg) {
		for _, name := range messageNames {
			if cfg.Has(ctx + "." + name) {
				result = append(result, violation{
					file:     file,
					location: ctx + "." + name,
					message:  fmt.Sprintf("deprecated placement; move to %s.customMessages.%s", ctx, name),
				})
			}
		}
	}
	return result
}

// lintCloseRedirects flags contexts whose save-and-exit variant has nowhere
// to go: a configured redirect with no redirectClose and no defaultRedirect
// resolves to no navigation on close.
func lintCloseRedirects(file string, cfg *config.Config) []violation {
	if cfg.Has("defaultRedirect") {
		return nil
	}

	var result []violation
	for _, ctx := range lintContexts(cfg) {
		if cfg.Has(ctx+".redirect") && !cfg.Has(ctx+".redirectClose") {
			result = append(result, violation{
				file:     file,
				location: ctx + ".redirect",
				message:  "close navigation has no target; add " + ctx + ".redirectClose or defaultRedirect",
			})
		}
	}
	return result
}

// lintContexts returns the built-in contexts plus any top-level section that
// looks like a custom render context.
func lintContexts(cfg *config.Config) []string {
	contexts := []string{"create", "update", "preview", "delete"}
	seen := map[string]bool{}
	for _, ctx := range contexts {
		seen[ctx] = true
	}

	for _, key := range cfg.Keys() {
		if seen[key] {
			continue
		}
		if cfg.Has(key+".redirect") || cfg.Has(key+".customMessages") {
			contexts = append(contexts, key)
			seen[key] = true
		}
	}
	return contexts
}
