package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/illarion/pswdfile/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "get":
		runGet(os.Args[2:])
	case "add":
		runUpsert("add", os.Args[2:])
	case "update":
		runUpsert("update", os.Args[2:])
	case "remove", "rm":
		runRemove(os.Args[2:])
	case "list", "ls":
		runList(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "compact":
		runCompact(os.Args[2:])
	case "genkey":
		runGenKey(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// fileFlags registers the options shared by every data file command
func fileFlags(fs *flag.FlagSet, cfg *cmd.Config) {
	fs.BoolVar(&cfg.Revised, "revised", false, "Use the revised URL-safe blob format")
	fs.StringVar(&cfg.Key, "key", "", "Revised format key (URL-safe base64)")
	fs.StringVar(&cfg.KeyringName, "keyring", "", "Load the revised key from the OS keyring")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	fs.BoolVar(&cfg.Debug, "debug", false, "Debug output")
}

// parseFileCommand parses flags and requires at least min positional arguments,
// the first of which is the data file
func parseFileCommand(name string, args []string, min int) (cmd.Config, []string) {
	var cfg cmd.Config
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fileFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < min {
		fmt.Fprintf(os.Stderr, "Error: not enough arguments for %s\n\n", name)
		printCommandHelp(name)
		os.Exit(1)
	}
	cfg.File = fs.Arg(0)
	return cfg, fs.Args()
}

func runGet(args []string) {
	cfg, rest := parseFileCommand("get", args, 2)
	cmd.Get(cfg, rest[1], arg(rest, 2))
}

func runUpsert(name string, args []string) {
	cfg, rest := parseFileCommand(name, args, 2)

	var passwordArg []string
	if len(rest) > 3 {
		passwordArg = rest[3:]
	}
	password, err := cmd.GetPassword(passwordArg)
	if err != nil {
		cmd.HandleError(err)
	}

	cmd.Upsert(cfg, rest[1], arg(rest, 2), password, name == "update")
}

func runRemove(args []string) {
	cfg, rest := parseFileCommand("remove", args, 2)
	cmd.Remove(cfg, rest[1], arg(rest, 2))
}

func runList(args []string) {
	cfg, _ := parseFileCommand("list", args, 1)
	cmd.List(cfg)
}

func runStatus(args []string) {
	cfg, _ := parseFileCommand("status", args, 1)
	cmd.Status(cfg)
}

func runCompact(args []string) {
	cfg, _ := parseFileCommand("compact", args, 1)
	cmd.Compact(cfg)
}

func runGenKey(args []string) {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	save := fs.String("save", "", "Save the key to the OS keyring under this name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.GenKey(*save)
}

func runKeyring(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: pswdfile keyring <delete|status> <name>")
		os.Exit(1)
	}

	switch args[0] {
	case "delete":
		cmd.KeyringDelete(args[1])
	case "status":
		cmd.KeyringStatus(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pswdfile completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

// arg returns args[i], or "" when it is absent
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printUsage() {
	fmt.Println("pswdfile - Encrypted password file for service accounts")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pswdfile <command> [flags] <file> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  get         Print the password for a username and host")
	fmt.Println("  add         Add an entry to the password file")
	fmt.Println("  update      Replace an existing entry")
	fmt.Println("  remove, rm  Remove an entry")
	fmt.Println("  list, ls    List stored username@host entries")
	fmt.Println("  status      Show password file details")
	fmt.Println("  compact     Compact the password file to reclaim disk space")
	fmt.Println("  genkey      Generate a key for the revised format")
	fmt.Println("  keyring     Manage revised keys in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  pswdfile add .pddatafile alice db1          # Prompt for the password")
	fmt.Println("  pswdfile get .pddatafile alice db1          # Print the password")
	fmt.Println("  pswdfile rm .pddatafile alice db1           # Remove the entry")
	fmt.Println("  pswdfile get -revised -keyring app f alice  # Revised format, key from keyring")
	fmt.Println()
	fmt.Println("Use 'pswdfile help <command>' for more information about a command.")
}

func printFileFlags() {
	fmt.Println("Flags:")
	fmt.Println("  -revised        Use the revised URL-safe blob format")
	fmt.Println("  -key KEY        Revised format key (URL-safe base64, 32 bytes)")
	fmt.Println("  -keyring NAME   Load the revised key from the OS keyring")
	fmt.Println("  -v              Verbose output")
	fmt.Println("  -debug          Debug output")
	fmt.Println()
	fmt.Println("In revised mode without -key or -keyring the key is read from $PSWDFILE_KEY.")
	fmt.Println("Without any key the key is derived from the username and host.")
}

func printCommandHelp(command string) {
	switch command {
	case "get":
		fmt.Println("pswdfile get [flags] <file> <username> [host]")
		fmt.Println()
		fmt.Println("Decrypts and prints the password stored for username and host.")
		fmt.Println("The file is opened read-only.")
		fmt.Println()
		printFileFlags()
	case "add", "update":
		fmt.Printf("pswdfile %s [flags] <file> <username> [host] [password]\n", command)
		fmt.Println()
		fmt.Println("Encrypts the password and stores it for username and host.")
		fmt.Println("An existing entry for the same username and host is replaced.")
		fmt.Println("The file is created if it does not exist.")
		fmt.Println("Without a password argument, $PSWDFILE_PASSWORD is used, or you are prompted.")
		fmt.Println()
		printFileFlags()
	case "remove", "rm":
		fmt.Println("pswdfile remove [flags] <file> <username> [host]")
		fmt.Println()
		fmt.Println("Removes the entry for username and host and compacts the file.")
		fmt.Println()
		printFileFlags()
	case "list", "ls":
		fmt.Println("pswdfile list [flags] <file>")
		fmt.Println()
		fmt.Println("Lists the username@host of every entry. Does not decrypt anything.")
	case "status":
		fmt.Println("pswdfile status [flags] <file>")
		fmt.Println()
		fmt.Println("Shows the file path, size, format version, entry count and timestamps.")
	case "compact":
		fmt.Println("pswdfile compact [flags] <file>")
		fmt.Println()
		fmt.Println("Compacts the password file to reclaim unused disk space.")
		fmt.Println("This is done automatically after 'remove'.")
	case "genkey":
		fmt.Println("pswdfile genkey [-save NAME]")
		fmt.Println()
		fmt.Println("Prints a new random key for the revised format.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -save NAME      Save the key to the OS keyring instead of printing it")
	case "keyring":
		fmt.Println("pswdfile keyring <delete|status> <name>")
		fmt.Println()
		fmt.Println("Removes a saved key, or reports whether one is stored.")
	case "completion":
		fmt.Println("pswdfile completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(pswdfile completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(pswdfile completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  pswdfile completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
