package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bak-counter/apperrors"
	"bak-counter/models"
)

// memoryStore is an in-memory EvidenceStore so the workflows run without
// a bucket. It records deletes for assertions.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memoryStore) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

type testEnv struct {
	db       *gorm.DB
	store    *memoryStore
	logs     *EventLogService
	trophies *TrophyService
	users    *UserService
	baks     *BakRequestService
	bets     *BetService
	requests *ValidationService
	admins   map[string]bool
}

func (e *testEnv) isAdmin(email string) bool { return e.admins[email] }

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = container.Terminate(terminateCtx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BakRequest{},
		&models.ValidationRequest{},
		&models.Bet{},
		&models.Trophy{},
		&models.UserTrophy{},
		&models.EventLog{},
		&models.HallOfFameEntry{},
	))

	env := &testEnv{
		db:     db,
		store:  newMemoryStore(),
		admins: map[string]bool{},
	}
	env.logs = NewEventLogService(db)
	env.trophies = NewTrophyService(db, env.logs)
	env.users = NewUserService(db, env.store, env.logs, env.trophies, 10<<20)
	env.baks = NewBakRequestService(db, env.logs)
	env.bets = NewBetService(db, env.logs, env.trophies)
	env.requests = NewValidationService(db, env.store, env.logs, env.trophies, env.isAdmin, 30<<20, 5)

	require.NoError(t, env.trophies.SeedDefaultTrophies())
	return env
}

func (e *testEnv) createUser(t *testing.T, name string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		GoogleID: fmt.Sprintf("google-%s-%d", name, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		Name:     name,
	}
	require.NoError(t, e.db.Create(user).Error)
	if admin {
		e.admins[user.Email] = true
	}
	user.IsAdmin = admin
	return user
}

func (e *testEnv) reload(t *testing.T, user *models.User) *models.User {
	t.Helper()
	var fresh models.User
	require.NoError(t, e.db.First(&fresh, "id = ?", user.ID).Error)
	fresh.IsAdmin = e.admins[fresh.Email]
	return &fresh
}

func (e *testEnv) trophyNames(t *testing.T, userID string) []string {
	t.Helper()
	awarded, err := e.trophies.ListForUser(userID)
	require.NoError(t, err)
	names := make([]string, 0, len(awarded))
	for _, ut := range awarded {
		names = append(names, ut.Trophy.Name)
	}
	return names
}

// evidenceFile builds a real multipart.FileHeader by round-tripping a form.
func evidenceFile(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="evidence"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["evidence"][0]
}

func TestIntegration(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("dual approval clears a bak and grants xp", func(t *testing.T) {
		requester := env.createUser(t, "anne", false)
		target := env.createUser(t, "bart", false)
		peer := env.createUser(t, "chris", false)
		admin := env.createUser(t, "dirk", true)

		require.NoError(t, env.db.Model(target).Update("bak", 2).Error)

		req, err := env.requests.Create(ctx, requester.ID, target.ID,
			evidenceFile(t, "proof.jpg", "image/jpeg", []byte("jpegdata")))
		require.NoError(t, err)
		require.Equal(t, models.ValidationPending, req.Status)
		require.NotEmpty(t, req.EvidenceKey)

		// requester may not approve their own request
		err = env.requests.Approve(ctx, requester, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))

		// first approval only records the slot
		require.NoError(t, env.requests.Approve(ctx, peer, req.ID))
		var mid models.ValidationRequest
		require.NoError(t, env.db.First(&mid, "id = ?", req.ID).Error)
		require.Equal(t, models.ValidationPending, mid.Status)
		require.Equal(t, peer.ID, *mid.FirstApproverID)
		require.Equal(t, 0, env.reload(t, target).XP)

		// the same member cannot fill both slots
		err = env.requests.Approve(ctx, peer, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))

		// second approval by an admin completes the request
		require.NoError(t, env.requests.Approve(ctx, admin, req.ID))

		fresh := env.reload(t, target)
		require.Equal(t, 1, fresh.XP)
		require.Equal(t, 1, fresh.Bak)

		var done models.ValidationRequest
		require.NoError(t, env.db.First(&done, "id = ?", req.ID).Error)
		require.Equal(t, models.ValidationApproved, done.Status)
		require.Equal(t, admin.ID, *done.SecondApproverID)
		require.Empty(t, done.EvidenceKey)
		require.Contains(t, env.store.deletedKeys(), req.EvidenceKey)

		// terminal: no further approvals
		err = env.requests.Approve(ctx, admin, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))
	})

	t.Run("two regular approvers are not enough", func(t *testing.T) {
		requester := env.createUser(t, "eva", false)
		target := env.createUser(t, "fred", false)
		first := env.createUser(t, "gijs", false)
		second := env.createUser(t, "hans", false)

		req, err := env.requests.Create(ctx, requester.ID, target.ID,
			evidenceFile(t, "proof.png", "image/png", []byte("pngdata")))
		require.NoError(t, err)

		require.NoError(t, env.requests.Approve(ctx, first, req.ID))
		err = env.requests.Approve(ctx, second, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))
	})

	t.Run("decline credits the requester", func(t *testing.T) {
		requester := env.createUser(t, "iris", false)
		target := env.createUser(t, "joep", false)
		peer := env.createUser(t, "kees", false)
		admin := env.createUser(t, "lena", true)

		req, err := env.requests.Create(ctx, requester.ID, target.ID,
			evidenceFile(t, "clip.mp4", "video/mp4", []byte("videodata")))
		require.NoError(t, err)

		// only admins decline
		err = env.requests.Decline(ctx, peer, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))

		require.NoError(t, env.requests.Decline(ctx, admin, req.ID))

		require.Equal(t, 1, env.reload(t, requester).Bak)
		require.Equal(t, 0, env.reload(t, target).Bak)

		var done models.ValidationRequest
		require.NoError(t, env.db.First(&done, "id = ?", req.ID).Error)
		require.Equal(t, models.ValidationDeclined, done.Status)
		require.Equal(t, admin.ID, *done.DeclinedByID)
		require.Empty(t, done.EvidenceKey)
		require.Contains(t, env.store.deletedKeys(), req.EvidenceKey)

		// a resolved request cannot be declined again
		err = env.requests.Decline(ctx, admin, req.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))
		require.Equal(t, 1, env.reload(t, requester).Bak)
	})

	t.Run("milestone trophies are granted once", func(t *testing.T) {
		admin := env.createUser(t, "mark", true)
		member := env.createUser(t, "nora", false)

		require.NoError(t, env.users.SetXP(admin, member.ID, 60, "inhaalslag"))
		require.ElementsMatch(t,
			[]string{"Junior", "Senior", "Master"},
			env.trophyNames(t, member.ID))

		// re-crossing the same milestones adds nothing
		require.NoError(t, env.users.SetXP(admin, member.ID, 70, "correctie"))
		require.Len(t, env.trophyNames(t, member.ID), 3)

		require.NoError(t, env.users.SetRep(admin, member.ID, 12, "reputatie"))
		require.ElementsMatch(t,
			[]string{"Junior", "Senior", "Master", "Strooier"},
			env.trophyNames(t, member.ID))
	})

	t.Run("bet is settled exactly once by the judge", func(t *testing.T) {
		initiator := env.createUser(t, "otto", false)
		opponent := env.createUser(t, "pien", false)
		judge := env.createUser(t, "quin", false)

		// the judge must be neutral
		_, err := env.bets.Create(initiator, opponent.ID, initiator.ID, "wie het eerst", "", 3)
		require.Equal(t, 400, apperrors.StatusOf(err))

		bet, err := env.bets.Create(initiator, opponent.ID, judge.ID, "wie het eerst", "100m sprint", 3)
		require.NoError(t, err)

		// judging before the opponent approved is rejected
		err = env.bets.Judge(judge, bet.ID, initiator.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))

		require.NoError(t, env.bets.ApproveByOpponent(opponent, bet.ID))

		// only the judge settles
		err = env.bets.Judge(initiator, bet.ID, initiator.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))

		require.NoError(t, env.bets.Judge(judge, bet.ID, initiator.ID))
		require.Equal(t, 3, env.reload(t, initiator).Rep)
		require.Equal(t, 3, env.reload(t, opponent).Bak)

		var done models.Bet
		require.NoError(t, env.db.First(&done, "id = ?", bet.ID).Error)
		require.Equal(t, models.BetCompleted, done.Status)
		require.Equal(t, initiator.ID, *done.WinnerID)

		// settling is a one-time transition
		err = env.bets.Judge(judge, bet.ID, opponent.ID)
		require.Equal(t, 403, apperrors.StatusOf(err))
		require.Equal(t, 3, env.reload(t, opponent).Bak)
	})

	t.Run("simple bak request resolution", func(t *testing.T) {
		requester := env.createUser(t, "rein", false)
		target := env.createUser(t, "sara", false)

		req, err := env.baks.Submit(requester.ID, target.ID, "verloren potje")
		require.NoError(t, err)

		// only the target resolves
		err = env.baks.Resolve(requester, req.ID, true)
		require.Equal(t, 403, apperrors.StatusOf(err))

		require.NoError(t, env.baks.Resolve(target, req.ID, true))
		require.Equal(t, 1, env.reload(t, target).Bak)

		// resolving twice is rejected
		err = env.baks.Resolve(target, req.ID, true)
		require.Equal(t, 403, apperrors.StatusOf(err))

		// declining a second request credits the requester instead
		req2, err := env.baks.Submit(requester.ID, target.ID, "nog een potje")
		require.NoError(t, err)
		require.NoError(t, env.baks.Resolve(target, req2.ID, false))
		require.Equal(t, 1, env.reload(t, requester).Bak)
		require.Equal(t, 1, env.reload(t, target).Bak)
	})
}
