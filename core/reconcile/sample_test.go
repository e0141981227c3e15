package reconcile

import (
	"testing"
	"time"

	"table-reconciler/core/dataset"

	"github.com/stretchr/testify/require"
)

var sampleColumns = []string{
	"RecordID", "UserName", "Age", "Salary", "IsActive", "JoinDate",
	"LastLogin", "Email", "Country", "Score", "Remarks",
}

// sampleReference mirrors a typed SQL table: ints, floats, dates and NULLs.
func sampleReference(t *testing.T) *dataset.Dataset {
	t.Helper()
	n := any(nil)
	rows := [][]any{
		{1, "Arjun", 25, 45000.50, 1, day("2023-01-10"), stamp("2024-12-01 10:20:30"), "arjun@gmail.com", "India", 85, "Active"},
		{2, "Meera", n, 52000.00, 1, day("2022-11-15"), stamp("2024-11-20 09:10:15"), "meera@gmail.com", "India", 90, "Good"},
		{3, "Rahul", 30, n, 0, day("2021-06-01"), n, n, "USA", 70, n},
		{4, n, 28, 60000.75, 1, day("2020-03-18"), stamp("2024-09-15 11:00:00"), "user4@mail.com", "Canada", 95, "Top performer"},
		{5, "Sita", n, n, 0, n, stamp("2024-08-01 12:15:00"), n, "India", n, n},
		{6, "John", 35, 72000.00, 1, day("2019-07-09"), stamp("2024-07-10 07:30:45"), "john@mail.com", "UK", 88, "Stable"},
		{7, "Priya", 26, 48000.00, 1, day("2023-05-22"), n, "priya@mail.com", "India", 78, n},
		{8, n, n, 39000.00, 0, day("2022-02-14"), stamp("2024-05-01 11:45:00"), n, "India", 60, "Low activity"},
		{9, "Kiran", 29, 55000.00, 1, day("2021-12-01"), stamp("2024-04-10 14:00:00"), "kiran@mail.com", "India", 82, n},
		{10, "Amit", 32, 65000.00, 1, day("2018-10-10"), stamp("2024-03-01 08:00:00"), "amit@mail.com", "India", 92, "Senior"},
		{11, "Neha", 31, 47000.00, 1, day("2020-08-08"), stamp("2024-02-02 09:00:00"), "neha@mail.com", "India", 77, "Transferred"},
		{12, n, 40, 80000.00, 1, day("2017-04-04"), stamp("2024-01-15 06:45:00"), "expert@mail.com", "USA", 98, "High value"},
		{13, "Ravi", 27, n, 1, day("2023-08-08"), stamp("2023-12-12 09:15:00"), "ravi@mail.com", "India", 65, n},
		{14, "Suresh", 45, 90000.00, 0, day("2015-05-05"), stamp("2023-11-11 11:11:11"), "suresh@mail.com", "India", 70, "Retired"},
		{15, "Vikram", n, 51000.00, 0, day("2022-09-09"), stamp("2023-10-10 10:10:10"), n, "India", 75, n},
		{16, "Anjali", 24, 42000.00, 1, day("2024-01-01"), stamp("2024-01-02 09:45:00"), "anjali@mail.com", "India", 80, "New"},
		{17, "Deepak", 36, 70000.00, 1, day("2016-06-06"), stamp("2023-09-09 07:00:00"), "deepak@mail.com", "India", 91, "Key member"},
	}

	ds := dataset.New("SQL", sampleColumns...)
	for _, raw := range rows {
		values := make([]dataset.Value, len(raw))
		for i, v := range raw {
			values[i] = dataset.Of(v)
		}
		require.NoError(t, ds.Append(values...))
	}
	return ds
}

// sampleComparand mirrors the same table exported to a spreadsheet, with
// deliberate edits: salary on 1, country on 3, age on 5, email on 7, age and
// remarks on 10, score on 13; 11 and 14 removed; 18 and 19 added.
func sampleComparand(t *testing.T) *dataset.Dataset {
	t.Helper()
	rows := [][]string{
		{"1", "Arjun", "25", "45500.50", "1", "2023-01-10", "2024-12-01 10:20:30", "arjun@gmail.com", "India", "85", "Active"},
		{"2", "Meera", "", "52000.00", "1", "2022-11-15", "2024-11-20 09:10:15", "meera@gmail.com", "India", "90", "Good"},
		{"3", "Rahul", "30", "", "0", "2021-06-01", "", "", "US", "70", ""},
		{"4", "", "28", "60000.75", "1", "2020-03-18", "2024-09-15 11:00:00", "user4@mail.com", "Canada", "95", "Top performer"},
		{"5", "Sita", "22", "", "0", "", "2024-08-01 12:15:00", "", "India", "", ""},
		{"6", "John", "35", "72000", "1", "2019-07-09 00:00:00", "2024-07-10 07:30:45", "john@mail.com", "UK", "88.0", "Stable"},
		{"7", "Priya", "26", "48000.00", "1", "2023-05-22", "", "priya.new@mail.com", "India", "78", ""},
		{"8", "", "", "39000.00", "0", "2022-02-14", "2024-05-01 11:45:00", "", "India", "60", "Low activity"},
		{"9", "Kiran", "29", "55000.00", "1", "2021-12-01", "2024-04-10 14:00:00", "kiran@mail.com", "India", "82", ""},
		{"10", "Amit", "33", "65000.00", "1", "2018-10-10", "2024-03-01 08:00:00", "amit@mail.com", "India", "92", "Senior Lead"},
		{"12", "", "40", "80000.00", "1", "2017-04-04", "2024-01-15 06:45:00", "expert@mail.com", "USA", "98", "High value"},
		{"13", "Ravi", "27", "", "1", "2023-08-08", "2023-12-12 09:15:00", "ravi@mail.com", "India", "72", ""},
		{"15", "Vikram", "", "51000.00", "0", "2022-09-09", "2023-10-10 10:10:10", "", "India", "75", ""},
		{" 16 ", "Anjali", "24", "42000.00", "1", "2024-01-01", "2024-01-02 09:45:00", "anjali@mail.com", "India", "80", "New"},
		{"17", "Deepak", "36", "70000.00", "1", "2016-06-06", "2023-09-09 07:00:00", "deepak@mail.com", "India", "91", "Key member"},
		{"18", "Pooja", "23", "38000.00", "1", "2024-06-15", "2024-06-16 08:30:00", "pooja@mail.com", "India", "62", "Newly added"},
		{"19", "Alex", "29", "58000.00", "1", "2024-02-20", "2024-02-21 10:15:00", "alex@mail.com", "Germany", "83", "From EU office"},
	}
	return textDataset(t, "test@diff.xlsx", sampleColumns, rows)
}

// textDataset builds a dataset of text cells; empty strings become null.
func textDataset(t *testing.T, label string, columns []string, rows [][]string) *dataset.Dataset {
	t.Helper()
	ds := dataset.New(label, columns...)
	for _, raw := range rows {
		values := make([]dataset.Value, len(raw))
		for i, s := range raw {
			if s == "" {
				values[i] = dataset.Null()
			} else {
				values[i] = dataset.Text(s)
			}
		}
		require.NoError(t, ds.Append(values...))
	}
	return ds
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func stamp(s string) time.Time {
	d, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return d
}
