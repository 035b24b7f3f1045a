package flatlog

// Format renders r exactly as the sink would write it, including the trailing newline.
func (s *Sink) Format(r Record) []byte {
	return s.formatter.Format(r.Level.String(), r.Time, r.Origin.String(), r.Text, r.Fields)
}

// Submit records a pre-built Record. Its Time is ignored; lines are stamped on arrival.
func (s *Sink) Submit(r Record) {
	s.Record(r.Text, r.Level, r.Fields, r.Origin)
}
