package wizard

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/domain/listing"
	"groupstays/internal/pkg/apperr"
)

func TestStore_OwnerScoped(t *testing.T) {
	st := NewStore(time.Minute, 100)
	defer st.Stop()
	st.Put(newSession("s1", 7, listing.NewDraft(), time.Now()))

	got, err := st.Get(7, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	_, err = st.Get(8, "s1")
	assert.Equal(t, http.StatusNotFound, apperr.As(err).Status)
	assert.ErrorIs(t, st.Delete(8, "s1"), ErrSessionNotFound)

	require.NoError(t, st.Delete(7, "s1"))
	_, err = st.Get(7, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Expiry(t *testing.T) {
	st := NewStore(20*time.Millisecond, 100)
	defer st.Stop()
	st.Put(newSession("s1", 7, listing.NewDraft(), time.Now()))

	time.Sleep(40 * time.Millisecond)
	_, err := st.Get(7, "s1")
	assert.Equal(t, CodeSessionNotFound, apperr.As(err).Code)
}

func TestFieldOrder_SleepsMinFirst(t *testing.T) {
	names := fieldOrder(map[string]any{"title": "x", "sleepsMax": 4, "sleepsMin": 2, "county": "Kent"})
	assert.Equal(t, []string{"sleepsMin", "sleepsMax", "county", "title"}, names)
}
