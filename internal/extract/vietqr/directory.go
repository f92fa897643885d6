package vietqr

import "sort"

// defaultBanks maps NAPAS bank identification numbers to display names.
var defaultBanks = map[string]string{
	"970407": "Techcombank",
	"970422": "MBBank",
	"970415": "VietinBank",
	"970418": "BIDV",
	"970405": "Agribank",
	"970436": "Vietcombank",
	"970423": "TPBank",
	"970432": "VPBank",
	"970403": "Sacombank",
	"970441": "VIB",
	"970443": "SHB",
	"970416": "ACB",
	"970454": "VietCapital",
	"970428": "NamABank",
	"970406": "DongA Bank",
	"970412": "PVcomBank",
	"970400": "SaigonBank",
	"970437": "HDBank",
	"970468": "SeABank",
	"970433": "VietBank",
	"970452": "KienLongBank",
	"970455": "PG Bank",
	"970449": "LienVietPostBank",
	"970425": "AnBinhBank",
	"970424": "Shinhan Bank",
	"970431": "Eximbank",
	"970414": "OceanBank",
	"970408": "GPBank",
	"970439": "Public Bank",
	"970429": "SCB",
	"970458": "United Overseas",
	"970410": "Standard Chartered",
	"970419": "NCB",
}

// Directory is an immutable BIN to bank-name table.
// It is safe for concurrent use.
type Directory struct {
	names map[string]string
}

// DefaultDirectory returns the built-in bank table.
func DefaultDirectory() *Directory {
	return NewDirectory(defaultBanks)
}

// NewDirectory creates a directory from a copy of names.
func NewDirectory(names map[string]string) *Directory {
	m := make(map[string]string, len(names))
	for bin, name := range names {
		m[bin] = name
	}
	return &Directory{names: m}
}

// Lookup returns the bank name registered for bin.
func (d *Directory) Lookup(bin string) (string, bool) {
	name, ok := d.names[bin]
	return name, ok
}

// BINs returns all registered BINs in ascending order.
func (d *Directory) BINs() []string {
	bins := make([]string, 0, len(d.names))
	for bin := range d.names {
		bins = append(bins, bin)
	}
	sort.Strings(bins)
	return bins
}

// Len returns the number of registered banks.
func (d *Directory) Len() int {
	return len(d.names)
}
