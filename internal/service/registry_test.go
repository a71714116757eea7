package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz_web/internal/models"
)

func testConfig() models.RoomConfig {
	return models.RoomConfig{
		Subject:         "matematicas",
		GradeLevel:      "10",
		Difficulty:      "medio",
		TimePerQuestion: 30,
		TotalQuestions:  2,
	}
}

func TestCreateRoomHostIsSoleMember(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala 1", 7, 4, testConfig())
	require.NoError(t, err)

	assert.Equal(t, uint(7), room.HostUserID)
	assert.Equal(t, []uint{7}, room.Members)
	assert.Equal(t, models.RoomStatusWaiting, room.Status)
}

func TestJoinRoomCapacity(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala", 1, 2, testConfig())
	require.NoError(t, err)

	require.NoError(t, rooms.JoinRoom(room.ID, 2))
	assert.ErrorIs(t, rooms.JoinRoom(room.ID, 3), ErrRoomFull)

	got, err := rooms.GetRoom(room.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got.Members), got.Capacity)
}

func TestJoinRoomAlreadyMember(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala", 1, 4, testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.JoinRoom(room.ID, 1), ErrAlreadyMember)
}

func TestJoinRoomNotFound(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())
	assert.ErrorIs(t, rooms.JoinRoom(99, 1), ErrRoomNotFound)
}

func TestLeaveRoomKeepsJoinOrder(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala", 1, 4, testConfig())
	require.NoError(t, err)
	require.NoError(t, rooms.JoinRoom(room.ID, 2))
	require.NoError(t, rooms.JoinRoom(room.ID, 3))

	require.NoError(t, rooms.LeaveRoom(room.ID, 2))

	got, err := rooms.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, got.Members)
}

func TestLeaveRoomDeletesEmptyRoom(t *testing.T) {
	repo := newFakeRoomRepo()
	rooms := NewRoomService(repo)

	var closed []uint
	rooms.OnRoomClosed(func(roomID uint) {
		closed = append(closed, roomID)
	})

	room, err := rooms.CreateRoom("sala", 1, 4, testConfig())
	require.NoError(t, err)

	require.NoError(t, rooms.LeaveRoom(room.ID, 1))

	_, err = rooms.GetRoom(room.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Equal(t, []uint{room.ID}, closed)

	_, err = repo.FindByID(room.ID)
	assert.Error(t, err)
}

func TestLeaveRoomPromotesNextHost(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala", 1, 4, testConfig())
	require.NoError(t, err)
	require.NoError(t, rooms.JoinRoom(room.ID, 2))
	require.NoError(t, rooms.JoinRoom(room.ID, 3))

	require.NoError(t, rooms.LeaveRoom(room.ID, 1))

	got, err := rooms.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.HostUserID)
	assert.Equal(t, []uint{2, 3}, got.Members)
}

func TestGetRoomReturnsSnapshot(t *testing.T) {
	rooms := NewRoomService(newFakeRoomRepo())

	room, err := rooms.CreateRoom("sala", 1, 4, testConfig())
	require.NoError(t, err)

	snapshot, err := rooms.GetRoom(room.ID)
	require.NoError(t, err)
	snapshot.Members[0] = 42

	again, err := rooms.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, again.Members)
}
