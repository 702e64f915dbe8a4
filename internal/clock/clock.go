package clock

import "time"

// Clock supplies the current time to services so sales-window checks can be
// exercised at fixed instants.
type Clock interface {
	Now() time.Time
}

type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System returns wall-clock time in UTC.
func System() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

func Fixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
