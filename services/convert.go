package services

import (
	"github.com/samber/lo"

	"chat-exchange/domain"
	"chat-exchange/repositories"
)

func toDiskMessage(m domain.Message) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Kind: string(m.Kind),
		At:   m.At,
	}
}

func fromDiskMessage(d repositories.DiskMessage) domain.Message {
	return domain.Message{
		ID:   d.ID,
		From: d.From,
		To:   d.To,
		Text: d.Text,
		Kind: domain.Kind(d.Kind),
		At:   d.At,
	}
}

func fromDiskMessages(disk []repositories.DiskMessage) []domain.Message {
	return lo.Map(disk, func(item repositories.DiskMessage, _ int) domain.Message {
		return fromDiskMessage(item)
	})
}

func fromDiskParticipants(disk []repositories.DiskParticipant) []domain.Participant {
	return lo.Map(disk, func(item repositories.DiskParticipant, _ int) domain.Participant {
		return domain.Participant{Name: item.Name, LastSeen: item.LastSeen}
	})
}
