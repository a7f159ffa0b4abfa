package inventory

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/pkg/textmatch"
)

// Paginación del historial.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// MoveFilter filtros del historial. Campos vacíos/nil no filtran.
type MoveFilter struct {
	Type      string
	Status    string
	ProductID int64
	Search    string
	From      *time.Time // created_at >= From
	To        *time.Time // created_at < To
}

var moveCodeRe = regexp.MustCompile(`(?i)^#?\s*mv-?0*(\d+)$`)

// ParseMoveCode reconoce una referencia de movimiento (MV-00042, MV42, #MV42) y devuelve el id.
func ParseMoveCode(s string) (int64, bool) {
	m := moveCodeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Matches indica si el movimiento cumple el filtro. Search compara (sin distinguir mayúsculas
// ni tildes) contra la referencia MV-xxxxx, la referencia externa, el producto y las ubicaciones.
func (f MoveFilter) Matches(v *entity.StockMoveView) bool {
	if f.Type != "" && v.Type != f.Type {
		return false
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.ProductID != 0 && v.ProductID != f.ProductID {
		return false
	}
	if f.From != nil && v.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !v.CreatedAt.Before(*f.To) {
		return false
	}
	if f.Search == "" {
		return true
	}
	if id, ok := ParseMoveCode(f.Search); ok && id == v.ID {
		return true
	}
	return textmatch.Contains(f.Search, v.Code(), v.Reference, v.ProductName, v.ProductSKU, v.SourceName, v.DestName)
}

// NormalizePage aplica valores por defecto y límites a page/perPage y devuelve el offset.
func NormalizePage(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage, (page - 1) * perPage
}

// TotalPages calcula el número de páginas para total registros.
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
