package kernel

import (
	"fmt"
	"strings"

	"github.com/orhun/kmon/internal/theme"
)

// CommandKind enumerates the module mutations that can be staged.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandLoad
	CommandUnload
	CommandReload
	CommandBlacklist
	CommandClear
)

const blacklistFile = "/etc/modprobe.d/blacklist.conf"

// Command is the shell line, description and title of a staged mutation.
type Command struct {
	Cmd    string
	Desc   string
	Title  string
	Symbol theme.Symbol
}

func (k CommandKind) String() string {
	switch k {
	case CommandLoad:
		return "load"
	case CommandUnload:
		return "unload"
	case CommandReload:
		return "reload"
	case CommandBlacklist:
		return "blacklist"
	case CommandClear:
		return "clear"
	default:
		return "none"
	}
}

// ParseCommandKind maps an option identifier to a command kind.
func ParseCommandKind(value string) (CommandKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "load":
		return CommandLoad, true
	case "unload":
		return CommandUnload, true
	case "reload":
		return CommandReload, true
	case "blacklist":
		return CommandBlacklist, true
	case "clear":
		return CommandClear, true
	}
	return CommandNone, false
}

// IsNone reports whether no command is pending.
func (k CommandKind) IsNone() bool {
	return k == CommandNone
}

// Command builds the command for the named module. It depends on nothing but
// its arguments.
func (k CommandKind) Command(name string) Command {
	switch k {
	case CommandLoad:
		return Command{
			Cmd: fmt.Sprintf("modprobe %s || insmod %s.ko", name, name),
			Desc: `modprobe: Add and remove modules from the Linux Kernel

modprobe intelligently adds a module to the kernel, loading any modules it depends on first.
When the module is not known to modprobe, insmod inserts the object file directly.`,
			Title:  "Load: " + name,
			Symbol: theme.SymbolAnchor,
		}
	case CommandUnload:
		return Command{
			Cmd: fmt.Sprintf("modprobe -r %s || rmmod %s", name, name),
			Desc: `modprobe: Add and remove modules from the Linux Kernel
option: -r, --remove

This option causes modprobe to remove rather than insert a module.
If the modules it depends on are also unused, modprobe will try to remove them too.

There is usually no reason to remove modules, but some buggy modules require it.
Your distribution kernel may not have been built to support removal of modules at all.`,
			Title:  "Remove: " + name,
			Symbol: theme.SymbolCircleX,
		}
	case CommandReload:
		return Command{
			Cmd: CommandUnload.Command(name).Cmd + " && " + CommandLoad.Command(name).Cmd,
			Desc: `modprobe: Add and remove modules from the Linux Kernel

The module is removed and inserted again, which resets its state
and picks up changed module parameters.`,
			Title:  "Reload: " + name,
			Symbol: theme.SymbolFuelPump,
		}
	case CommandBlacklist:
		return Command{
			Cmd: fmt.Sprintf(`if ! grep -q %[1]s %[2]s; then
  echo 'blacklist %[1]s' >> %[2]s
  echo 'install %[1]s /bin/false' >> %[2]s
fi`, name, blacklistFile),
			Desc: `Blacklisting is a mechanism to prevent the kernel module from loading.

The blacklist keyword stops the module from being loaded automatically by alias.
The install line runs /bin/false instead of loading the module, so it cannot be
pulled in as a dependency either.`,
			Title:  "Blacklist: " + name,
			Symbol: theme.SymbolSquareX,
		}
	case CommandClear:
		return Command{
			Cmd: "dmesg --clear",
			Desc: `dmesg: Print or control the kernel ring buffer
option: -C, --clear

Clear the ring buffer.`,
			Title:  "Clear",
			Symbol: theme.SymbolCloud,
		}
	default:
		return Command{Title: "Module: " + name, Symbol: theme.SymbolNone}
	}
}
