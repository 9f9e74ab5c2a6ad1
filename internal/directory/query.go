package directory

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"ayushdesk/internal/domain"
)

// Sort names a dotted field path and direction. Paths resolve through nested
// structs by json tag, e.g. "qualifications.ug.yearOfPassing".
type Sort struct {
	Key  string
	Desc bool
}

// Filters narrows the user list. Status compares the email-verification
// flag, not the 4-state lifecycle status; "ALL" or empty is a no-op.
// Date bounds are inclusive against createdAt.
type Filters struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Params drives one page of the user list.
type Params struct {
	Page     int
	PageSize int
	Search   string
	Filters  Filters
	Sort     Sort
}

// Page is the stable paginated envelope every list operation returns.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// QueryUsers applies the fixed pipeline search -> filter -> sort -> paginate.
// Search and filter narrow the candidate set before the sort; sort must
// precede pagination for the slice to be correct.
func QueryUsers(items []domain.UserSummary, p Params) Page[domain.UserSummary] {
	filtered := applyUserFilters(filterBySearch(items, p.Search), p.Filters)
	sorted := SortByPath(filtered, p.Sort)
	return Paginate(sorted, p.Page, p.PageSize)
}

// filterBySearch keeps items whose joined fullname/email/phoneNumber contains
// the query, case-insensitively. Blank queries are a no-op.
func filterBySearch(items []domain.UserSummary, search string) []domain.UserSummary {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return items
	}
	out := make([]domain.UserSummary, 0, len(items))
	for _, item := range items {
		fields := make([]string, 0, 3)
		for _, f := range []string{item.Fullname, item.Email, item.PhoneNumber} {
			if f != "" {
				fields = append(fields, f)
			}
		}
		if strings.Contains(strings.ToLower(strings.Join(fields, " ")), query) {
			out = append(out, item)
		}
	}
	return out
}

func applyUserFilters(items []domain.UserSummary, f Filters) []domain.UserSummary {
	out := items
	if f.Status != "" && f.Status != "ALL" {
		wantVerified := f.Status == string(domain.FlagVerified)
		kept := make([]domain.UserSummary, 0, len(out))
		for _, item := range out {
			if item.IsEmailVerified == wantVerified {
				kept = append(kept, item)
			}
		}
		out = kept
	}
	if f.DateFrom != nil {
		kept := make([]domain.UserSummary, 0, len(out))
		for _, item := range out {
			if !item.CreatedAt.Before(*f.DateFrom) {
				kept = append(kept, item)
			}
		}
		out = kept
	}
	if f.DateTo != nil {
		kept := make([]domain.UserSummary, 0, len(out))
		for _, item := range out {
			if !item.CreatedAt.After(*f.DateTo) {
				kept = append(kept, item)
			}
		}
		out = kept
	}
	return out
}

// SortByPath stable-sorts a copy of items ascending by the dotted path, with
// missing/nil values last regardless of direction, then reverses the whole
// slice when Desc is set.
//
// Reversing after an ascending stable sort is not a stable descending sort:
// equal-key elements come out in inverted relative order. That quirk is
// load-bearing for existing consumers and is reproduced deliberately.
func SortByPath[T any](items []T, s Sort) []T {
	if s.Key == "" {
		return items
	}
	sorted := append([]T(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return comparePath(sorted[i], sorted[j], s.Key) < 0
	})
	if s.Desc {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted
}

func comparePath(a, b any, path string) int {
	av, aok := fieldByPath(reflect.ValueOf(a), path)
	bv, bok := fieldByPath(reflect.ValueOf(b), path)
	if !aok {
		return 1
	}
	if !bok {
		return -1
	}
	return compareValues(av, bv)
}

func compareValues(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as := strings.ToLower(fmt.Sprint(a))
	bs := strings.ToLower(fmt.Sprint(b))
	return strings.Compare(as, bs)
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// fieldByPath walks a dotted path through structs (matched by json tag, then
// field name), maps, and pointers. The second return is false when any
// segment is missing or nil, which sorts the item last.
func fieldByPath(v reflect.Value, path string) (any, bool) {
	for _, segment := range strings.Split(path, ".") {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		switch v.Kind() {
		case reflect.Struct:
			field, ok := structField(v, segment)
			if !ok {
				return nil, false
			}
			v = field
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v = v.MapIndex(reflect.ValueOf(segment))
			if !v.IsValid() {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name || (tag == "" && strings.EqualFold(f.Name, name)) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Paginate slices [start, start+pageSize) out of items. Pages beyond the end
// yield empty data with correct total and totalPages, never an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	out := Page[T]{Data: []T{}, Page: page, PageSize: pageSize, Total: total}
	if pageSize < 1 {
		return out
	}
	out.TotalPages = (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return out
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	out.Data = append(out.Data, items[start:end]...)
	return out
}
