package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// StartRedisSubscriber inicia uma goroutine que escuta o canal Redis Pub/Sub
// e repassa as oportunidades recém-detectadas para os clientes WebSocket via Hub
//
// Funcionamento:
// - Recebe mensagens JSON do canal Redis
// - Desserializa para OpportunityUpdate
// - Chama hub.Broadcast para enviar aos clientes inscritos no esporte
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var upd OpportunityUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
					log.Printf("ws subscriber unmarshal error: %v", err)
					continue
				}
				hub.Broadcast(upd) // envia as oportunidades para os inscritos
			}
		}
	}()
}
