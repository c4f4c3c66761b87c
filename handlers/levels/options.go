package levels

import "github.com/bwmarrin/discordgo"

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func toOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// subcommand returns the invoked subcommand name and its options.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, optionMap) {
	if len(data.Options) == 0 {
		return "", optionMap{}
	}
	sub := data.Options[0]
	return sub.Name, toOptionMap(sub.Options)
}

func (m optionMap) int64Opt(name string) (int64, bool) {
	if opt, ok := m[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

func (m optionMap) stringOpt(name string) (string, bool) {
	if opt, ok := m[name]; ok {
		return opt.StringValue(), true
	}
	return "", false
}

func (m optionMap) roleOpt(name string) (string, bool) {
	if opt, ok := m[name]; ok {
		return opt.RoleValue(nil, "").ID, true
	}
	return "", false
}

func (m optionMap) userOpt(name string) (*discordgo.User, bool) {
	if opt, ok := m[name]; ok {
		return opt.UserValue(nil), true
	}
	return nil, false
}

func (m optionMap) boolOpt(name string) bool {
	if opt, ok := m[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// tierChange builds a tier-edit change set from the given options.
func (m optionMap) tierChange() TierChange {
	var change TierChange
	if v, ok := m.int64Opt("threshold"); ok {
		change.Threshold = &v
	}
	if v, ok := m.roleOpt("role"); ok {
		change.RoleID = &v
	}
	if m.boolOpt("clear-role") {
		empty := ""
		change.RoleID = &empty
	}
	if v, ok := m.stringOpt("name"); ok {
		change.Name = &v
	}
	return change
}
