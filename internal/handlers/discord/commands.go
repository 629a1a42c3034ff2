package discord

import "github.com/bwmarrin/discordgo"

// Command names
const (
	commandSheet     = "sheet"
	commandRoll      = "roll"
	commandTarget    = "target"
	commandEncounter = "encounter"
)

func sheetIDOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "sheet",
		Description: description,
		Required:    true,
	}
}

func rollSubcommand(name, description, keyDescription string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			sheetIDOption("Sheet ID to roll for"),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "key",
				Description: keyDescription,
				Required:    true,
			},
		},
	}
}

// Commands returns the slash commands the bot registers
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandSheet,
			Description: "Character and NPC sheets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new sheet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Sheet name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "kind",
							Description: "Character or NPC (default character)",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Character", Value: "character"},
								{Name: "NPC", Value: "npc"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show a sheet",
					Options:     []*discordgo.ApplicationCommandOption{sheetIDOption("Sheet ID")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your sheets",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set a base field, e.g. abilities.dex.score 18",
					Options: []*discordgo.ApplicationCommandOption{
						sheetIDOption("Sheet ID"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "path",
							Description: "Field path",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "value",
							Description: "New value (JSON literals are parsed)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lore",
					Description: "Add a lore skill",
					Options: []*discordgo.ApplicationCommandOption{
						sheetIDOption("Sheet ID"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Lore name, e.g. Sailing Lore",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "rank",
							Description: "Proficiency rank, or the flat modifier for NPCs",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete one of your sheets",
					Options:     []*discordgo.ApplicationCommandOption{sheetIDOption("Sheet ID")},
				},
			},
		},
		{
			Name:        commandRoll,
			Description: "Roll from a sheet",
			Options: []*discordgo.ApplicationCommandOption{
				rollSubcommand("skill", "Roll a skill check", "Skill key, e.g. stealth"),
				rollSubcommand("lore", "Roll a lore check", "Lore ID or name"),
				rollSubcommand("save", "Roll a saving throw", "fortitude, reflex or will"),
				rollSubcommand("ability", "Roll an ability check", "str, dex, con, int, wis or cha"),
				rollSubcommand("attribute", "Roll perception or spell attack", "perception or spell-attack"),
				rollSubcommand("damage", "Roll damage", "Formula, e.g. 2d6+4"),
			},
		},
		{
			Name:        commandTarget,
			Description: "Choose who roll outcomes apply to",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Target tokens or sheets",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "ids",
							Description: "Token or sheet IDs separated by spaces or commas",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show your targets",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear your targets",
				},
			},
		},
		{
			Name:        commandEncounter,
			Description: "Encounter and initiative tracking",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open an encounter in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Encounter name",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Place a token for a sheet",
					Options: []*discordgo.ApplicationCommandOption{
						sheetIDOption("Sheet ID"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "token",
							Description: "Token ID (generated when empty)",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Display name (defaults to the sheet name)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a combatant",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "token",
							Description: "Token ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start combat once everyone has initiative",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "next",
					Description: "Advance to the next turn",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the initiative order",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the encounter",
				},
			},
		},
	}
}
