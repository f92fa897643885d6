package domain

// BlockKind identifies the type of a text block.
type BlockKind string

// Available block kinds.
const (
	BlockQRCode      BlockKind = "qr_code"
	BlockBankInfo    BlockKind = "bank_info"
	BlockPhoneNumber BlockKind = "phone_number"
	BlockURLLink     BlockKind = "url_link"
	BlockMapLocation BlockKind = "map_location"
	BlockText        BlockKind = "text"
)

// Well-known block metadata keys.
const (
	MetaAccountNumber = "accountNumber"
	MetaBankName      = "bankName"
	MetaAmount        = "amount"
	MetaDomain        = "domain"
	MetaFormat        = "format"
)

// TextBlock is a typed segment of a screenshot's content.
type TextBlock struct {
	Kind     BlockKind         `json:"kind"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Meta returns a metadata value, or "" when absent.
func (b TextBlock) Meta(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}

// Label returns a short display name for the block kind.
func (k BlockKind) Label() string {
	switch k {
	case BlockQRCode:
		return "QR"
	case BlockBankInfo:
		return "Bank"
	case BlockPhoneNumber:
		return "Phone"
	case BlockURLLink:
		return "Link"
	case BlockMapLocation:
		return "Map"
	case BlockText:
		return "Text"
	default:
		return unknownDescription
	}
}

// BlockKindFor maps a category to the block kind that represents it.
// Event, Note and Other are plain text blocks.
func BlockKindFor(c Category) BlockKind {
	switch c {
	case CategoryBank:
		return BlockBankInfo
	case CategoryURL:
		return BlockURLLink
	case CategoryPhone:
		return BlockPhoneNumber
	case CategoryMap:
		return BlockMapLocation
	default:
		return BlockText
	}
}
