package domain

// Reply is what a command handler sends back. Exactly one of Text and Embed
// is set.
type Reply struct {
	Text  string
	Embed *Embed
}

func TextReply(text string) Reply {
	return Reply{Text: text}
}

func EmbedReply(embed Embed) Reply {
	return Reply{Embed: &embed}
}

func (r Reply) IsEmbed() bool {
	return r.Embed != nil
}

// Embed is a platform-neutral rich message.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Footer      string
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}
