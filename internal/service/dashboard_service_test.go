package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
)

func TestGreeting(t *testing.T) {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Bom dia", Greeting(day.Add(7*time.Hour)))
	require.Equal(t, "Boa tarde", Greeting(day.Add(12*time.Hour)))
	require.Equal(t, "Boa tarde", Greeting(day.Add(17*time.Hour+59*time.Minute)))
	require.Equal(t, "Boa noite", Greeting(day.Add(18*time.Hour)))
}

func TestDashboardTotalsAndSearch(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	mathClass := f.createClass(t)
	ana := f.addStudent(t, mathClass.ID, "Ana")
	f.addStudent(t, mathClass.ID, "Bruno")
	_, err := f.gradebook.SetScore(ctx, mathClass.ID, ana.ID, "m1", dto.ScoreUpdateRequest{Value: "9"})
	require.NoError(t, err)
	_, err = f.gradebook.SetScore(ctx, mathClass.ID, ana.ID, "bi", dto.ScoreUpdateRequest{Value: "7"})
	require.NoError(t, err)

	_, err = f.classes.Create(ctx, Actor{ID: "teacher-1"}, dto.ClassCreateRequest{Grade: "2ª Série - Ensino Médio", Section: "Única", Subject: "História"})
	require.NoError(t, err)

	svc := NewDashboardService(f.repo, nil, time.Minute, testLogger()).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, 19, 0, 0, 0, time.UTC) }

	all, err := svc.GetDashboard(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "Boa noite", all.Greeting)
	require.Equal(t, dto.DashboardTotals{Students: 2, Classes: 2, Lessons: 0, GradesFilled: 2}, all.Totals)
	require.Len(t, all.Classes, 2)

	filtered, err := svc.GetDashboard(ctx, "  HISTÓ ")
	require.NoError(t, err)
	require.Len(t, filtered.Classes, 1)
	require.Equal(t, "2ª Série - Ensino Médio - Única", filtered.Classes[0].Name)
	require.Equal(t, all.Totals, filtered.Totals)

	byName, err := svc.GetDashboard(ctx, "turma a")
	require.NoError(t, err)
	require.Len(t, byName.Classes, 1)
	require.Equal(t, 2, byName.Classes[0].StudentCount)
}

func TestDashboardCacheFollowsRevision(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	f := newServiceFixture(t)
	ctx := context.Background()
	class := f.createClass(t)

	svc := NewDashboardService(f.repo, client, time.Minute, testLogger()).(*dashboardService)
	hour := 9
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, hour, 0, 0, 0, time.UTC) }

	first, err := svc.GetDashboard(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 0, first.Totals.Students)
	require.Len(t, server.Keys(), 1)

	hour = 15
	cached, err := svc.GetDashboard(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "Boa tarde", cached.Greeting, "greeting is never cached")
	require.Equal(t, first.Totals, cached.Totals)
	require.Len(t, server.Keys(), 1)

	f.addStudent(t, class.ID, "Ana")

	fresh, err := svc.GetDashboard(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Totals.Students)
	require.Len(t, server.Keys(), 2)
}
