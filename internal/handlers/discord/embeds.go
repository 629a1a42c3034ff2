package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

const (
	colorSheet     = 0x3498db
	colorRoll      = 0x9b59b6
	colorCrit      = 0x2ecc71
	colorFumble    = 0xe74c3c
	colorEncounter = 0xe67e22
)

var titleCaser = cases.Title(language.English)

func kindLabel(kind shared.SheetKind) string {
	if kind.IsNPC() {
		return "NPC"
	}
	return titleCaser.String(string(kind))
}

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func buildSheetEmbed(s *sheet.Sheet) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       s.Name,
		Description: fmt.Sprintf("Level %d %s", s.Level.Int(), kindLabel(s.Kind)),
		Color:       colorSheet,
		Footer:      &discordgo.MessageEmbedFooter{Text: s.ID},
	}

	var abilities []string
	for _, attr := range shared.Attributes {
		if ability := s.Ability(attr); ability != nil {
			abilities = append(abilities, fmt.Sprintf("%s %s", attr.Short(), signed(ability.Modifier.Int())))
		}
	}
	if len(abilities) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Abilities",
			Value: strings.Join(abilities, " · "),
		})
	}

	hp := fmt.Sprintf("%d / %d", s.HitPoints.Value.Int(), s.HitPoints.Max.Int())
	if temp := s.HitPoints.Temp.Int(); temp > 0 {
		hp += fmt.Sprintf(" (+%d temp)", temp)
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "HP", Value: hp, Inline: true},
		&discordgo.MessageEmbedField{Name: "AC", Value: fmt.Sprintf("%d", s.ArmorClass.Value.Int()), Inline: true},
	)
	if s.Perception != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Perception",
			Value:  signed(s.Perception.Computed.Total),
			Inline: true,
		})
	}

	if saves := formatStatistics(s.Saves, false); saves != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Saves", Value: saves})
	}
	skills := formatStatistics(s.Skills, true)
	if skills == "" {
		skills = "None trained"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Skills", Value: skills})

	if len(s.Lore) > 0 {
		lines := make([]string, 0, len(s.Lore))
		for _, lore := range s.Lore {
			if lore == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s", lore.Name, signed(lore.Computed.Total)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Lore", Value: strings.Join(lines, "\n")})
	}

	if s.SpellDC != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Spells",
			Value: fmt.Sprintf("DC %d · attack %s", s.SpellDC.DC.Int(), signed(s.SpellDC.AttackBonus)),
		})
	}

	return embed
}

// formatStatistics lists statistics by label, optionally only the trained ones
func formatStatistics(stats map[string]*sheet.Statistic, trainedOnly bool) string {
	keys := make([]string, 0, len(stats))
	for key, stat := range stats {
		if stat == nil || (trainedOnly && stat.Rank <= 0) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, key := range keys {
		stat := stats[key]
		label := stat.Label
		if label == "" {
			label = titleCaser.String(key)
		}
		lines[i] = fmt.Sprintf("%s %s", label, signed(stat.Computed.Total))
	}
	return strings.Join(lines, "\n")
}

func buildOutcomeEmbed(outcome *dice.Outcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       outcome.Title,
		Description: fmt.Sprintf("**%d**", outcome.Total),
		Color:       colorRoll,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Formula", Value: outcome.Formula, Inline: true},
			{Name: "Rolled", Value: outcome.Result, Inline: true},
		},
	}
	if outcome.Speaker.Name != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: outcome.Speaker.Name}
	}

	switch {
	case outcome.IsCrit():
		embed.Color = colorCrit
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Natural 20!"}
	case outcome.IsFumble():
		embed.Color = colorFumble
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Natural 1"}
	}
	return embed
}

func buildEncounterEmbed(encounter *combat.Encounter) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: encounter.Name,
		Color: colorEncounter,
	}

	switch encounter.Status {
	case combat.EncounterStatusActive:
		embed.Description = fmt.Sprintf("Round %d", encounter.Round)
		if current := encounter.Current(); current != nil {
			embed.Description += fmt.Sprintf(" · **%s**'s turn", current.Name)
		}
	default:
		embed.Description = titleCaser.String(string(encounter.Status))
	}

	if encounter.Status == combat.EncounterStatusSetup {
		// turn order is only fixed on start, preview it from what is rolled so far
		encounter = encounter.Clone()
		encounter.SortTurnOrder()
	}

	order := make([]string, 0, len(encounter.TurnOrder))
	for i, id := range encounter.TurnOrder {
		c, ok := encounter.Combatants[id]
		if !ok {
			continue
		}
		marker := "  "
		if encounter.Status == combat.EncounterStatusActive && i == encounter.Turn {
			marker = "▶"
		}
		order = append(order, fmt.Sprintf("%s %s `%s` %s (%s)", marker, formatInitiative(c), c.TokenID, c.Name, titleCaser.String(string(c.Type))))
	}
	if len(order) == 0 {
		order = append(order, "No combatants yet")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Initiative",
		Value: strings.Join(order, "\n"),
	})

	return embed
}

func formatInitiative(c *combat.Combatant) string {
	if !c.HasInitiative() {
		return "--"
	}
	return fmt.Sprintf("%2d", *c.Initiative)
}
