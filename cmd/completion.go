package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_pswdfile() {
    local cur prev words cword
    _init_completion || return

    local commands="get add update remove list status compact genkey keyring help completion"
    local flags="-revised -key -keyring -v -debug"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        get|add|update|remove|list|status|compact)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "$flags" -- "$cur"))
            else
                _filedir
            fi
            ;;
        genkey)
            COMPREPLY=($(compgen -W "-save" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _pswdfile pswdfile
`

const zshCompletion = `#compdef pswdfile

_pswdfile() {
    local -a commands
    commands=(
        'get:Print the password for a username and host'
        'add:Add a new entry to the password file'
        'update:Update an existing entry in the password file'
        'remove:Remove an entry from the password file'
        'list:List entries in the password file'
        'status:Show password file details'
        'compact:Compact the password file to reclaim disk space'
        'genkey:Generate a key for the revised format'
        'keyring:Manage keys in the OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'pswdfile commands' commands
            ;;
        args)
            case "${words[2]}" in
                get|add|update|remove|list|status|compact)
                    _arguments \
                        '-revised[Use the revised URL-safe format]' \
                        '-key[Revised format key]:key' \
                        '-keyring[Load the revised key from the OS keyring]:name' \
                        '-v[Verbose output]' \
                        '-debug[Debug output]' \
                        '*:file:_files'
                    ;;
                genkey)
                    _arguments '-save[Save the key to the OS keyring]:name'
                    ;;
                keyring)
                    _values 'subcommand' delete status
                    ;;
                help)
                    _describe -t commands 'pswdfile commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_pswdfile "$@"
`

const fishCompletion = `# pswdfile fish completions

set -l commands get add update remove list status compact genkey keyring help completion
set -l filecommands get add update remove list status compact

complete -c pswdfile -f

# Commands
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a get -d 'Print a password'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add an entry'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a update -d 'Update an entry'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a remove -d 'Remove an entry'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a list -d 'List entries'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show file details'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact the file'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a genkey -d 'Generate a revised key'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage keys in OS keyring'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c pswdfile -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# data file flags and files
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -o revised -d 'Use the revised format'
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -o key -r -d 'Revised format key'
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -o keyring -r -d 'Key name in OS keyring'
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -o v -d 'Verbose output'
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -o debug -d 'Debug output'
complete -c pswdfile -n "__fish_seen_subcommand_from $filecommands" -F

# genkey flags
complete -c pswdfile -n "__fish_seen_subcommand_from genkey" -o save -r -d 'Save to OS keyring'

# keyring subcommands
complete -c pswdfile -n "__fish_seen_subcommand_from keyring" -a "delete status"

# help completions
complete -c pswdfile -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c pswdfile -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
