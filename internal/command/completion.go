// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/meta"
)

const bashCompletionScript = `# bash completion for pkgdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pkgdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare fetch drift completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local fetching="--arch --refresh --workers"
    local common="--attrs -a --bucket -b --color -c --filter -f --output -o --padding --sort -s --titles -t --tldr"

    case "$cmd" in
        compare)
            local opts="$common $fetching --fetch --schema"
            ;;
        fetch)
            local opts="$fetching --tldr"
            ;;
        drift)
            if [[ "$cur" != -* ]]; then
                COMPREPLY=( $(compgen -f -- "$cur") )
                return 0
            fi
            local opts="--color -c --ignore --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --arch)
            COMPREPLY=( $(compgen -W "aarch64 armh i586 mipsel ppc64le riscv64 s390x sparc64 x86_64" -- "$cur") )
            return 0
            ;;
        --bucket|-b)
            COMPREPLY=( $(compgen -W "a b higher" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise complete the optional WorkDir positional.
    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _pkgdiff pkgdiff
`

const zshCompletionScript = `#compdef pkgdiff

_pkgdiff() {
  local -a cmds
  cmds=(
    'compare:compare the package lists of two branches'
    'fetch:fetch and persist the package lists of both branches'
    'drift:show the difference between two saved JSON files'
    'completion:generate shell completion script'
  )

  local -a archs
  archs=(aarch64 armh i586 mipsel ppc64le riscv64 s390x sparc64 x86_64)

  local -a fetching
  fetching=(
  '*--arch[architectures to process]:arch:($archs)'
  '--refresh[ignore cached feed responses]'
  '--workers[concurrent fetches]:workers'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '*'{-b,--bucket}'[buckets to render]:bucket:(a b higher)'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pkgdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    compare)
      _arguments -C \
        $common \
        $fetching \
        '--fetch[fetch fresh listings before comparing, bypassing the cache]' \
        '--schema[list the package attributes]' \
        '::WorkDir:_directories'
      ;;
    fetch)
      _arguments -C \
        $fetching \
        '--tldr[show tldr page]' \
        '::WorkDir:_directories'
      ;;
    drift)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored output]' \
        '*--ignore[top level keys to leave out]:key' \
        '1:old:_files' \
        '2:new:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pkgdiff pkgdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Fall back to the login shell.
		shell = filepath.Base(os.Getenv("SHELL"))
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		return fmt.Errorf("usage: pkgdiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pkgdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
