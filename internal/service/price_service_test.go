package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cardplanner/pkg/api"
)

func TestPriceService(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")

	st := alice.createStore(t, "A")
	bobStore := bob.createStore(t, "B")
	item := alice.addItem(t, alice.createList(t, "").ID, alice.customCard(t, "Card").ID, 1)

	t.Run("set and overwrite", func(t *testing.T) {
		resp, err := alice.prices.SetPrice(ctx, connect.NewRequest(&api.SetPriceRequest{
			ItemID: item.ID, StoreID: st.ID, Price: ptr(2.5),
		}))
		require.NoError(t, err)
		require.NotNil(t, resp.Msg.Price.Price)
		assert.Equal(t, 2.5, *resp.Msg.Price.Price)

		alice.setPrice(t, item.ID, st.ID, ptr(0.0))
		prices, err := alice.prices.ListPrices(ctx, connect.NewRequest(&api.ListPricesRequest{ItemID: item.ID}))
		require.NoError(t, err)
		require.Len(t, prices.Msg.Prices, 1)
		require.NotNil(t, prices.Msg.Prices[0].Price, "zero is a price, not out of stock")
		assert.Equal(t, 0.0, *prices.Msg.Prices[0].Price)
	})

	t.Run("clear to out of stock", func(t *testing.T) {
		alice.setPrice(t, item.ID, st.ID, nil)
		prices, err := alice.prices.ListPrices(ctx, connect.NewRequest(&api.ListPricesRequest{ItemID: item.ID}))
		require.NoError(t, err)
		assert.Nil(t, prices.Msg.Prices[0].Price)
	})

	tests := []struct {
		name   string
		client *userClients
		req    *api.SetPriceRequest
		want   connect.Code
	}{
		{"negative", alice, &api.SetPriceRequest{ItemID: item.ID, StoreID: st.ID, Price: ptr(-0.01)}, connect.CodeInvalidArgument},
		{"too high", alice, &api.SetPriceRequest{ItemID: item.ID, StoreID: st.ID, Price: ptr(10000.0)}, connect.CodeInvalidArgument},
		{"other user's store", alice, &api.SetPriceRequest{ItemID: item.ID, StoreID: bobStore.ID, Price: ptr(1.0)}, connect.CodeNotFound},
		{"other user's item", bob, &api.SetPriceRequest{ItemID: item.ID, StoreID: bobStore.ID, Price: ptr(1.0)}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.prices.SetPrice(ctx, connect.NewRequest(tt.req))
			assertCode(t, tt.want, err)
		})
	}

	t.Run("delete", func(t *testing.T) {
		_, err := alice.prices.DeletePrice(ctx, connect.NewRequest(&api.DeletePriceRequest{ItemID: item.ID, StoreID: st.ID}))
		require.NoError(t, err)

		prices, err := alice.prices.ListPrices(ctx, connect.NewRequest(&api.ListPricesRequest{ItemID: item.ID}))
		require.NoError(t, err)
		assert.Empty(t, prices.Msg.Prices)

		_, err = alice.prices.DeletePrice(ctx, connect.NewRequest(&api.DeletePriceRequest{ItemID: item.ID, StoreID: st.ID}))
		assertCode(t, connect.CodeNotFound, err)
	})
}
