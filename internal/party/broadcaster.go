package party

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Broadcaster fans out party and queue change notifications over redis
// pub/sub, one channel pair per party. Delivery is best effort: publishing
// never blocks or fails the mutation that triggered it, and a subscriber that
// is offline when a change lands simply misses it and re-fetches on reconnect.
type Broadcaster struct {
	rdb   *redis.Client
	store Store
}

func NewBroadcaster(rdb *redis.Client, store Store) *Broadcaster {
	return &Broadcaster{rdb: rdb, store: store}
}

func partyChannel(partyID string) string { return "party:" + partyID }
func queueChannel(partyID string) string { return "queue:" + partyID }

// PublishParty announces a committed party mutation. Call only after the
// store change is durable.
func (b *Broadcaster) PublishParty(ctx context.Context, p *Party) {
	if b == nil || b.rdb == nil || p == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("party-service: marshal party event: %v", err)
		return
	}
	if err := b.rdb.Publish(ctx, partyChannel(p.ID), string(data)).Err(); err != nil {
		log.Printf("party-service: publish party event: %v", err)
	}
}

// PublishQueue announces a committed queue mutation. Subscribers re-fetch the
// listing themselves, so the payload is only a marker.
func (b *Broadcaster) PublishQueue(ctx context.Context, partyID string) {
	if b == nil || b.rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]string{"partyId": partyID})
	if err != nil {
		log.Printf("party-service: marshal queue event: %v", err)
		return
	}
	if err := b.rdb.Publish(ctx, queueChannel(partyID), string(data)).Err(); err != nil {
		log.Printf("party-service: publish queue event: %v", err)
	}
}

// PartySubscription yields party snapshots until Unsubscribe. Snapshots older
// than the last buffered one (by version, which follows commit order) are
// dropped, so a subscriber never steps backwards for the same party.
type PartySubscription struct {
	C <-chan Party

	done chan struct{}
	ps   *redis.PubSub
	wg   sync.WaitGroup
	once sync.Once
}

// Unsubscribe stops delivery and releases the redis subscription. After it
// returns nothing more is sent and C is closed.
func (s *PartySubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		_ = s.ps.Close()
		s.wg.Wait()
	})
}

func (b *Broadcaster) SubscribeParty(ctx context.Context, partyID string) *PartySubscription {
	ps := b.rdb.Subscribe(ctx, partyChannel(partyID))
	out := make(chan Party, 16)
	sub := &PartySubscription{
		C:    out,
		done: make(chan struct{}),
		ps:   ps,
	}

	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()
		defer close(out)

		var last Party
		var seen bool
		for msg := range ps.Channel() {
			select {
			case <-sub.done:
				return
			default:
			}

			var p Party
			if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
				log.Printf("party-service: decode party event: %v", err)
				continue
			}
			if seen && p.Version < last.Version {
				continue
			}

			select {
			case out <- p:
			default:
				// Full buffer: evict the oldest snapshot to make room. Slow
				// subscribers lose intermediate snapshots, never the newest.
				select {
				case <-out:
				default:
				}
				select {
				case out <- p:
				default:
					continue
				}
			}
			last, seen = p, true
		}
	}()

	return sub
}

// QueueSubscription yields full queue listings until Unsubscribe. Each
// notification triggers a fresh read of the store, so a delivered listing is
// always at least as new as the commit that caused it.
type QueueSubscription struct {
	C <-chan []QueueEntry

	done chan struct{}
	ps   *redis.PubSub
	wg   sync.WaitGroup
	once sync.Once
}

func (s *QueueSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		_ = s.ps.Close()
		s.wg.Wait()
	})
}

func (b *Broadcaster) SubscribeQueue(ctx context.Context, partyID string) *QueueSubscription {
	ps := b.rdb.Subscribe(ctx, queueChannel(partyID))
	out := make(chan []QueueEntry, 16)
	sub := &QueueSubscription{
		C:    out,
		done: make(chan struct{}),
		ps:   ps,
	}

	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()
		defer close(out)

		for range ps.Channel() {
			select {
			case <-sub.done:
				return
			default:
			}

			entries, err := b.store.ListQueue(ctx, partyID)
			if err != nil {
				log.Printf("party-service: refetch queue %s: %v", partyID, err)
				continue
			}

			select {
			case out <- entries:
			default:
				// Each listing is a full re-read, so only the newest matters.
				select {
				case <-out:
				default:
				}
				select {
				case out <- entries:
				default:
				}
			}
		}
	}()

	return sub
}
