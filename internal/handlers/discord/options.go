package discord

import "github.com/bwmarrin/discordgo"

// findOption looks for a named option, drilling through subcommand groups and
// subcommands the way Discord nests them
func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for len(options) > 0 {
		for _, opt := range options {
			if opt.Name == name {
				return opt
			}
		}

		if len(options[0].Options) == 0 {
			break
		}
		options = options[0].Options
	}

	return nil
}

// subcommand returns the first nested subcommand
func subcommand(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt
		}
		if opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			return subcommand(opt.Options)
		}
	}
	return nil
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt := findOption(options, name)
	if opt == nil {
		return ""
	}
	return opt.StringValue()
}

func intOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	opt := findOption(options, name)
	if opt == nil {
		return 0
	}
	return opt.IntValue()
}
