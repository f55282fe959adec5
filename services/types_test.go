package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomListDecodesObjectAndArray(t *testing.T) {
	var single struct {
		Rooms RoomList `json:"Rooms"`
	}
	err := json.Unmarshal([]byte(`{"Rooms":{"Name":"Standard","BookingCode":"abc!1"}}`), &single)
	require.NoError(t, err)
	require.Len(t, single.Rooms, 1)
	require.Equal(t, "abc!1", single.Rooms[0].BookingCode)

	var multi struct {
		Rooms RoomList `json:"Rooms"`
	}
	err = json.Unmarshal([]byte(`{"Rooms":[{"BookingCode":"a"},{"BookingCode":"b"}]}`), &multi)
	require.NoError(t, err)
	require.Len(t, multi.Rooms, 2)

	var none struct {
		Rooms RoomList `json:"Rooms"`
	}
	err = json.Unmarshal([]byte(`{"Rooms":null}`), &none)
	require.NoError(t, err)
	require.Nil(t, none.Rooms)
}

func TestHotelResultListDecodesObjectAndArray(t *testing.T) {
	var resp SearchResponse
	err := json.Unmarshal([]byte(`{"Status":{"Code":"200"},"HotelResult":{"HotelCode":"414792","Rooms":{"BookingCode":"x"}}}`), &resp)
	require.NoError(t, err)
	require.Len(t, resp.HotelResult, 1)
	require.Equal(t, "414792", resp.HotelResult[0].HotelCode)
	require.Len(t, resp.HotelResult[0].Rooms, 1)

	err = json.Unmarshal([]byte(`{"Status":{"Code":"200"},"HotelResult":[{"HotelCode":"1"},{"HotelCode":"2"}]}`), &resp)
	require.NoError(t, err)
	require.Len(t, resp.HotelResult, 2)
}

func TestStringBool(t *testing.T) {
	var room Room
	err := json.Unmarshal([]byte(`{"IsRefundable":"true","WithTransfers":false}`), &room)
	require.NoError(t, err)
	require.True(t, bool(room.IsRefundable))
	require.False(t, bool(room.WithTransfers))

	out, err := json.Marshal(room.IsRefundable)
	require.NoError(t, err)
	require.Equal(t, `"true"`, string(out))
}

func TestStatusOKRequiresLiteral200(t *testing.T) {
	require.True(t, Status{Code: "200"}.OK())
	require.False(t, Status{Code: "201"}.OK())
	require.False(t, Status{Code: "500", Description: "error"}.OK())
	require.False(t, Status{}.OK())
}
