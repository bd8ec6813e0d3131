package main

import (
	"fmt"
	"io"
)

// CompletionCmd is the "completion" subcommand.
type CompletionCmd struct {
	Shell string `arg:"" optional:"" enum:"bash,zsh,fish" default:"bash" help:"Target shell (bash, zsh, fish)."`
}

func (c *CompletionCmd) Run(deps *Dependencies) error {
	script, err := completionScript(c.Shell)
	if err != nil {
		return err
	}
	_, err = io.WriteString(deps.Stdout, script)
	return err
}

func completionScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return `# bash completion for datapass-monitor
_datapass_monitor_completion() {
  local cur prev words cword
  _init_completion || return
  local commands="show watch doctor completion"
  local source_flags="--url --file --cookie --timeout --no-fingerprint"
  if [[ ${cword} -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "${commands} --verbose --log --version --help" -- "${cur}") )
    return
  fi
  case "${prev}" in
    --file|-F|--log)
      _filedir
      return
      ;;
    --format|-f)
      COMPREPLY=( $(compgen -W "human json" -- "${cur}") )
      return
      ;;
  esac
  case "${words[1]}" in
    completion)
      COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
      ;;
    doctor)
      COMPREPLY=( $(compgen -W "--json ${source_flags}" -- "${cur}") )
      ;;
    watch)
      COMPREPLY=( $(compgen -W "--interval --no-color --no-alt-screen --notify-below ${source_flags}" -- "${cur}") )
      ;;
    *)
      COMPREPLY=( $(compgen -W "--format --color --used --total --remaining --percentage --plan ${source_flags}" -- "${cur}") )
      ;;
  esac
}
complete -F _datapass_monitor_completion datapass-monitor
`, nil
	case "zsh":
		return `#compdef datapass-monitor
_datapass_monitor() {
  local -a commands source_flags
  commands=(
    'show:print the current data usage'
    'watch:keep the usage on screen and refresh it'
    'doctor:check that the usage page can be fetched and read'
    'completion:print shell completion script'
  )
  source_flags=(--url --file --cookie --timeout --no-fingerprint)
  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi
  case "${words[2]}" in
    completion)
      _values 'shell' bash zsh fish
      ;;
    doctor)
      _values 'flag' --json $source_flags
      ;;
    watch)
      _values 'flag' --interval --no-color --no-alt-screen --notify-below $source_flags
      ;;
    *)
      _values 'flag' --format --color --used --total --remaining --percentage --plan $source_flags
      ;;
  esac
}
_datapass_monitor "$@"
`, nil
	case "fish":
		return `# fish completion for datapass-monitor
set -l commands show watch doctor completion
complete -c datapass-monitor -f
complete -c datapass-monitor -n "not __fish_seen_subcommand_from $commands" -a show -d 'Print the current data usage'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from $commands" -a watch -d 'Keep the usage on screen and refresh it'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from $commands" -a doctor -d 'Check that the usage page can be fetched and read'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Print shell completion script'
complete -c datapass-monitor -s v -l verbose -d 'Log fetch and parse details'
complete -c datapass-monitor -l log -r -F -d 'Append JSON log lines to file'
complete -c datapass-monitor -l version -d 'Print the version and exit'
complete -c datapass-monitor -s u -l url -x -d 'Usage page URL'
complete -c datapass-monitor -s F -l file -r -F -d 'Read the page from a saved HTML file'
complete -c datapass-monitor -l cookie -x -d 'Cookie header sent with the request'
complete -c datapass-monitor -l timeout -x -d 'Fetch timeout'
complete -c datapass-monitor -l no-fingerprint -d 'Use the plain Go TLS handshake'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -s f -l format -x -a 'human json' -d 'Output format'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -s c -l color -d 'Force coloured output'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -l used -d 'Print only the used volume'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -l total -d 'Print only the total volume'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -l remaining -d 'Print only the remaining volume'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -l percentage -d 'Print only the used percentage'
complete -c datapass-monitor -n "not __fish_seen_subcommand_from watch doctor completion" -l plan -d 'Print only the plan name'
complete -c datapass-monitor -n "__fish_seen_subcommand_from watch" -l interval -x -d 'Poll interval'
complete -c datapass-monitor -n "__fish_seen_subcommand_from watch" -l no-color -d 'Disable colour styling'
complete -c datapass-monitor -n "__fish_seen_subcommand_from watch" -l no-alt-screen -d 'Disable alternate screen mode'
complete -c datapass-monitor -n "__fish_seen_subcommand_from watch" -l notify-below -x -d 'Notify below this remaining percentage'
complete -c datapass-monitor -n "__fish_seen_subcommand_from doctor" -l json -d 'Output the report as JSON'
complete -c datapass-monitor -n "__fish_seen_subcommand_from completion" -a 'bash zsh fish'
`, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (expected bash, zsh or fish)", shell)
	}
}
