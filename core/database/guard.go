package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrForbiddenQuery is returned for queries that could modify the database.
var ErrForbiddenQuery = errors.New("only SELECT queries are permitted")

// forbiddenKeywords are statement keywords rejected anywhere in a query,
// matched as whole words so column names like created_at pass.
var forbiddenKeywords = regexp.MustCompile(`(?i)\b(DROP|DELETE|UPDATE|INSERT|TRUNCATE|ALTER|GRANT|REVOKE|EXEC|CREATE|MERGE)\b`)

// CheckReadOnly rejects empty queries and queries containing a data or
// schema modifying keyword.
func CheckReadOnly(query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("query is empty")
	}
	if kw := forbiddenKeywords.FindString(query); kw != "" {
		return fmt.Errorf("%w: found %s", ErrForbiddenQuery, strings.ToUpper(kw))
	}
	return nil
}
