package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"parley/internal/domain/course"
	"parley/internal/domain/event"
	"parley/internal/domain/member"
	"parley/internal/domain/organization"
	"parley/internal/domain/practice"
)

// OrganizationsCSV serializes organizations to a flat CSV blob.
// A pure transform: an empty collection yields a header-only file.
func OrganizationsCSV(orgs []organization.Organization) ([]byte, error) {
	return writeCSV(
		[]string{"id", "name", "domain", "users", "industry", "status"},
		len(orgs),
		func(i int) []string {
			o := orgs[i]
			return []string{
				strconv.FormatInt(o.ID, 10), o.Name, o.Domain,
				strconv.Itoa(o.Users), o.Industry, o.Status,
			}
		},
	)
}

// MembersCSV serializes members to a flat CSV blob.
func MembersCSV(members []member.Member) ([]byte, error) {
	return writeCSV(
		[]string{"id", "org_id", "name", "email", "tier", "status", "sessions", "avg_score"},
		len(members),
		func(i int) []string {
			m := members[i]
			return []string{
				strconv.FormatInt(m.ID, 10), strconv.FormatInt(m.OrgID, 10),
				m.Name, m.Email, m.Tier, m.Status,
				strconv.Itoa(m.SessionCount),
				strconv.FormatFloat(m.AvgScore, 'f', 1, 64),
			}
		},
	)
}

// EventsCSV serializes events to a flat CSV blob.
func EventsCSV(events []event.Event) ([]byte, error) {
	return writeCSV(
		[]string{"id", "org_id", "title", "status", "participants", "capacity", "deadline", "type"},
		len(events),
		func(i int) []string {
			e := events[i]
			return []string{
				strconv.FormatInt(e.ID, 10), strconv.FormatInt(e.OrgID, 10),
				e.Title, e.Status,
				strconv.Itoa(e.Participants), strconv.Itoa(e.Capacity),
				e.Deadline, e.Type,
			}
		},
	)
}

// CoursesCSV serializes courses to a flat CSV blob.
func CoursesCSV(courses []course.Course) ([]byte, error) {
	return writeCSV(
		[]string{"id", "title", "modules", "enrolled", "status"},
		len(courses),
		func(i int) []string {
			c := courses[i]
			return []string{
				strconv.FormatInt(c.ID, 10), c.Title,
				strconv.Itoa(c.Modules), strconv.Itoa(c.Enrolled), c.Status,
			}
		},
	)
}

// SessionsCSV serializes practice sessions to a flat CSV blob.
func SessionsCSV(sessions []practice.Session) ([]byte, error) {
	return writeCSV(
		[]string{"id", "member_id", "type", "topic", "opponent", "date", "duration_minutes", "outcome", "score"},
		len(sessions),
		func(i int) []string {
			s := sessions[i]
			return []string{
				strconv.FormatInt(s.ID, 10), strconv.FormatInt(s.MemberID, 10),
				s.Type, s.Topic, s.Opponent, s.Date,
				strconv.Itoa(s.DurationMinutes), s.Outcome,
				strconv.FormatFloat(s.Score, 'f', 1, 64),
			}
		},
	)
}

func writeCSV(header []string, n int, row func(i int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
