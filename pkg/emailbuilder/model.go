package emailbuilder

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// BlockKind identifies a content block variant.
type BlockKind string

const (
	BlockKindText    BlockKind = "text"
	BlockKindButton  BlockKind = "button"
	BlockKindDivider BlockKind = "divider"
	BlockKindImage   BlockKind = "image"
	BlockKindFile    BlockKind = "file-download"
	BlockKindVideo   BlockKind = "video"
	BlockKindCards   BlockKind = "cards"
	BlockKindList    BlockKind = "list"
	BlockKindAuthor  BlockKind = "author"
)

// Block is the tagged union of content block variants. Each concrete type
// carries its own payload struct; rendering dispatches on the concrete type.
type Block interface {
	GetID() string
	GetKind() BlockKind
}

// BaseBlock carries the fields shared by every block variant.
type BaseBlock struct {
	ID string `json:"-"`
}

func (b *BaseBlock) GetID() string {
	if b == nil {
		return ""
	}
	return b.ID
}

// TextBlock holds a rich-text fragment authored in the WYSIWYG editor.
// Font and TextColor override the document defaults when set.
type TextBlock struct {
	BaseBlock
	Content   string `json:"content"`
	Font      string `json:"font,omitempty"`
	TextColor string `json:"text_color,omitempty"`
}

func (b *TextBlock) GetKind() BlockKind { return BlockKindText }

// ButtonBlock renders a call-to-action. Style is "filled" or "outline",
// Size is "fit" or "full".
type ButtonBlock struct {
	BaseBlock
	Text      string `json:"text"`
	Link      string `json:"link,omitempty"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
	Style     string `json:"style,omitempty"`
	Size      string `json:"size,omitempty"`
	Centered  bool   `json:"centered,omitempty"`
}

func (b *ButtonBlock) GetKind() BlockKind { return BlockKindButton }

// DividerBlock renders a horizontal rule with symmetric vertical margin.
type DividerBlock struct {
	BaseBlock
	Color  string `json:"color,omitempty"`
	Margin int    `json:"margin,omitempty"`
}

func (b *DividerBlock) GetKind() BlockKind { return BlockKindDivider }

// ImageBlock renders an image sized as a percentage of the container width.
type ImageBlock struct {
	BaseBlock
	Image    string `json:"image"`
	Size     int    `json:"size,omitempty"`
	Link     string `json:"link,omitempty"`
	Centered bool   `json:"centered,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
}

func (b *ImageBlock) GetKind() BlockKind { return BlockKindImage }

// FileBlock renders a download row linking to a stored asset.
type FileBlock struct {
	BaseBlock
	Title     string `json:"title,omitempty"`
	File      string `json:"file"`
	BgColor   string `json:"bg_color,omitempty"`
	TextColor string `json:"text_color,omitempty"`
}

func (b *FileBlock) GetKind() BlockKind { return BlockKindFile }

// VideoBlock renders a YouTube thumbnail with a play-icon overlay linking
// out to the video. Non-YouTube URLs render nothing.
type VideoBlock struct {
	BaseBlock
	URL      string `json:"url"`
	Size     int    `json:"size,omitempty"`
	Centered bool   `json:"centered,omitempty"`
}

func (b *VideoBlock) GetKind() BlockKind { return BlockKindVideo }

// CardItem is a single card within a CardsBlock.
type CardItem struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Label       string `json:"label,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	ButtonLink  string `json:"button_link,omitempty"`
	Image       string `json:"image,omitempty"`
}

// CardsBlock renders a two-per-row card grid.
type CardsBlock struct {
	BaseBlock
	Title           string     `json:"title,omitempty"`
	Subtitle        string     `json:"subtitle,omitempty"`
	TextColor       string     `json:"text_color,omitempty"`
	LabelColor      string     `json:"label_color,omitempty"`
	ButtonColor     string     `json:"button_color,omitempty"`
	ButtonTextColor string     `json:"button_text_color,omitempty"`
	Cards           []CardItem `json:"cards"`
}

func (b *CardsBlock) GetKind() BlockKind { return BlockKindCards }

// ListItem is a single entry within a ListBlock.
type ListItem struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListBlock renders titled items with numbered badges or plain glyph bullets.
// BulletType is "number" or "bullet".
type ListBlock struct {
	BaseBlock
	Title       string     `json:"title,omitempty"`
	Subtitle    string     `json:"subtitle,omitempty"`
	TextColor   string     `json:"text_color,omitempty"`
	BulletColor string     `json:"bullet_color,omitempty"`
	BulletType  string     `json:"bullet_type,omitempty"`
	Items       []ListItem `json:"items"`
}

func (b *ListBlock) GetKind() BlockKind { return BlockKindList }

// AuthorBlock renders an author byline with avatar and social links.
type AuthorBlock struct {
	BaseBlock
	Name     string       `json:"name"`
	Subtitle string       `json:"subtitle,omitempty"`
	Avatar   string       `json:"avatar,omitempty"`
	Links    []SocialLink `json:"links,omitempty"`
}

func (b *AuthorBlock) GetKind() BlockKind { return BlockKindAuthor }

// UnknownBlock stands in for unrecognized or undecodable blocks. It renders
// nothing so a bad block never aborts a compile.
type UnknownBlock struct {
	BaseBlock
	RawKind string `json:"-"`
}

func (b *UnknownBlock) GetKind() BlockKind { return BlockKind(b.RawKind) }

// SocialLink pairs a registered icon name with a destination URL.
type SocialLink struct {
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// socialIcons is the fixed icon registry. Links with icons outside this set
// are omitted. The registry is read-only at render time.
var socialIcons = map[string]string{
	"mail":      "mail.png",
	"link":      "link.png",
	"facebook":  "facebook.png",
	"youtube":   "youtube.png",
	"instagram": "instagram.png",
	"tiktok":    "tiktok.png",
	"twitter":   "x.png",
	"x":         "x.png",
	"threads":   "threads.png",
	"bluesky":   "bluesky.png",
	"linkedin":  "linkedin.png",
}

// SocialIconAsset resolves an icon name against the registry.
func SocialIconAsset(icon string) (string, bool) {
	asset, ok := socialIcons[icon]
	return asset, ok
}

// Section is an ordered group of blocks. It carries no style of its own.
type Section struct {
	ID     string  `json:"id,omitempty"`
	Blocks []Block `json:"blocks"`
}

// Document is the ordered sequence of sections to compile. Render order is
// input order.
type Document struct {
	Sections []Section `json:"sections"`
}

// EmailStyle is the global style configuration, supplied once per compile
// and immutable during a render.
type EmailStyle struct {
	BackgroundColor string `json:"bg_color,omitempty"`
	IsInset         bool   `json:"is_inset,omitempty"`
	InsetBgColor    string `json:"inset_bg_color,omitempty"`
	Rounded         bool   `json:"rounded,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
	LinkColor       string `json:"link_color,omitempty"`
}

// FooterData is the organization footer configuration. SocialsStyle is
// "filled", "outline" or "icon-only".
type FooterData struct {
	Name               string       `json:"name,omitempty"`
	Subtitle           string       `json:"subtitle,omitempty"`
	Logo               string       `json:"logo,omitempty"`
	Address            string       `json:"address,omitempty"`
	Reason             string       `json:"reason,omitempty"`
	CopyrightName      string       `json:"copyright_name,omitempty"`
	Links              []SocialLink `json:"links,omitempty"`
	BgColor            string       `json:"bg_color,omitempty"`
	TextColor          string       `json:"text_color,omitempty"`
	SecondaryTextColor string       `json:"secondary_text_color,omitempty"`
	SocialsStyle       string       `json:"socials_style,omitempty"`
	SocialsColor       string       `json:"socials_color,omitempty"`
	SocialsIconColor   string       `json:"socials_icon_color,omitempty"`
}

// Personalization carries the per-recipient values and tracking URLs merged
// into a compiled document. It never mutates the Document.
type Personalization struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	UnsubscribeURL string `json:"unsubscribe_url,omitempty"`
	PreferencesURL string `json:"preferences_url,omitempty"`
}

// blockEnvelope is the stored JSON shape of a block: a type discriminator
// plus a variant-specific data payload.
type blockEnvelope struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// UnmarshalBlock decodes a single {type, data} envelope into its typed
// variant. Unrecognized kinds and undecodable payloads degrade to an
// UnknownBlock rather than failing, so one bad block never breaks a send.
func UnmarshalBlock(data []byte) (Block, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid block JSON")
	}

	kind := gjson.GetBytes(data, "type").String()
	id := gjson.GetBytes(data, "id").String()

	payload := []byte(gjson.GetBytes(data, "data").Raw)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var block Block
	switch BlockKind(kind) {
	case BlockKindText:
		block = &TextBlock{}
	case BlockKindButton:
		block = &ButtonBlock{}
	case BlockKindDivider:
		block = &DividerBlock{}
	case BlockKindImage:
		block = &ImageBlock{}
	case BlockKindFile:
		block = &FileBlock{}
	case BlockKindVideo:
		block = &VideoBlock{}
	case BlockKindCards:
		block = &CardsBlock{}
	case BlockKindList:
		block = &ListBlock{}
	case BlockKindAuthor:
		block = &AuthorBlock{}
	default:
		return &UnknownBlock{BaseBlock: BaseBlock{ID: id}, RawKind: kind}, nil
	}

	if err := json.Unmarshal(payload, block); err != nil {
		return &UnknownBlock{BaseBlock: BaseBlock{ID: id}, RawKind: kind}, nil
	}
	setBlockID(block, id)
	return block, nil
}

func setBlockID(b Block, id string) {
	switch v := b.(type) {
	case *TextBlock:
		v.ID = id
	case *ButtonBlock:
		v.ID = id
	case *DividerBlock:
		v.ID = id
	case *ImageBlock:
		v.ID = id
	case *FileBlock:
		v.ID = id
	case *VideoBlock:
		v.ID = id
	case *CardsBlock:
		v.ID = id
	case *ListBlock:
		v.ID = id
	case *AuthorBlock:
		v.ID = id
	case *UnknownBlock:
		v.ID = id
	}
}

// MarshalBlock re-wraps a typed block in its {id, type, data} envelope.
func MarshalBlock(b Block) ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal %s block data: %w", b.GetKind(), err)
	}
	return json.Marshal(blockEnvelope{
		ID:   b.GetID(),
		Type: string(b.GetKind()),
		Data: payload,
	})
}

// UnmarshalJSON decodes the section's blocks through the envelope format.
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID     string            `json:"id"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.ID = aux.ID
	s.Blocks = make([]Block, 0, len(aux.Blocks))
	for i, raw := range aux.Blocks {
		block, err := UnmarshalBlock(raw)
		if err != nil {
			return fmt.Errorf("decode block at index %d: %w", i, err)
		}
		s.Blocks = append(s.Blocks, block)
	}
	return nil
}

// MarshalJSON encodes the section's blocks back into envelopes.
func (s Section) MarshalJSON() ([]byte, error) {
	blocks := make([]json.RawMessage, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		raw, err := MarshalBlock(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, raw)
	}
	return json.Marshal(struct {
		ID     string            `json:"id,omitempty"`
		Blocks []json.RawMessage `json:"blocks"`
	}{ID: s.ID, Blocks: blocks})
}

// UnmarshalDocument decodes a stored document.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// NewSection groups blocks under a generated section ID. Used when building
// documents programmatically.
func NewSection(blocks ...Block) Section {
	return Section{ID: uuid.NewString(), Blocks: blocks}
}

// NewDocument assembles sections into a document.
func NewDocument(sections ...Section) Document {
	return Document{Sections: sections}
}

// NewBlockID generates a block identifier.
func NewBlockID() string {
	return uuid.NewString()
}
