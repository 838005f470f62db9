package store

import "strings"

const propColumns = "id, location, storage_id, description, keywords, category, status, quantity, photo_files, timestamp"

// searchColumns are the prop columns a search term is matched against.
var searchColumns = []string{"storage_id", "description", "keywords", "category", "location"}

// listQuery builds the prop listing statement. A non-empty search term
// selects the filtered shape: one case-insensitive substring condition per
// searchable column, OR'd together. Both shapes order by the stored
// timestamp string descending, so ordering follows whatever format the
// client supplied.
func listQuery(search string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(propColumns)
	sb.WriteString(" FROM props")

	var args []any
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args = append(args, pattern)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " OR "))
	}

	sb.WriteString(" ORDER BY timestamp DESC")
	return sb.String(), args
}
