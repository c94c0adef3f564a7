package eventid

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Provider hands out identifiers for damage events.
type Provider interface {
	Next() string
}

var _ Provider = &CounterProvider{}

// CounterProvider returns "1", "2", ... and is safe for concurrent use.
type CounterProvider struct {
	id int64
}

func Counter() *CounterProvider {
	return &CounterProvider{}
}

func (c *CounterProvider) Next() string {
	return strconv.FormatInt(atomic.AddInt64(&c.id, 1), 10)
}

var _ Provider = &UUIDProvider{}

type UUIDFn func() (uuid.UUID, error)

type UUIDProvider struct {
	next UUIDFn
}

func UUID() *UUIDProvider {
	return &UUIDProvider{
		next: func() (uuid.UUID, error) { return uuid.NewRandom() },
	}
}

func CustomUUID(next UUIDFn) *UUIDProvider {
	return &UUIDProvider{next: next}
}

// Next never fails: if no uuid can be generated the error text and the
// current time stand in for it.
func (p *UUIDProvider) Next() string {
	id, err := p.next()
	if err != nil {
		fallback := hex.EncodeToString([]byte(err.Error() + time.Now().String()))
		return fmt.Sprintf("%s (with error: %s)", fallback, err)
	}
	return id.String()
}
