package simulator

import "kds/internal/core/domain/model/order"

// Sample is one ready-made order a channel can emit.
type Sample struct {
	ClientName  string
	Description string
}

// catalog lists what each channel can produce. iFood and 99Food combine any client
// with any item; WhatsApp messages arrive already paired.
type catalog struct {
	clients []string
	items   []string
	paired  []Sample
}

var catalogs = map[order.Source]catalog{
	order.SourceIFood: {
		clients: []string{"Maria Silva", "João Santos", "Ana Oliveira", "Pedro Costa", "Julia Lima"},
		items: []string{
			"1x Açaí 500ml Tradicional + Granola + Leite Condensado + Banana",
			"2x Açaí 300ml + Morango + Leite em Pó",
			"1x Açaí 700ml Premium + Frutas Variadas + Mel + Paçoca",
			"1x Açaí 500ml + Nutella + Morango + Granola",
			"2x Açaí 400ml Fitness + Whey + Banana + Aveia",
		},
	},
	order.Source99Food: {
		clients: []string{"Carlos Mendes", "Fernanda Souza", "Ricardo Lima", "Patrícia Santos", "Bruno Alves"},
		items: []string{
			"1x Açaí 600ml + Frutas da Estação + Granola + Mel",
			"1x Açaí Bowl Grande + Banana + Morango + Kiwi",
			"2x Açaí 350ml Tradicional + Leite Condensado",
			"1x Açaí 500ml + Nutella + Amendoim + Leite em Pó",
			"1x Combo Família (3x Açaí 400ml) + Coberturas Variadas",
		},
	},
	order.SourceWhatsApp: {
		paired: []Sample{
			{ClientName: "Thiago Ferreira", Description: "2x Açaí 500ml + 1x Suco Natural Laranja 500ml"},
			{ClientName: "Amanda Costa", Description: "1x Açaí 700ml com tudo + 1x Água de Coco"},
			{ClientName: "Rafael Martins", Description: "3x Açaí 300ml Kids + Confete + Granola"},
			{ClientName: "Camila Rocha", Description: "1x Açaí 1L para viagem + Potes extras de cobertura"},
			{ClientName: "Lucas Pereira", Description: "2x Açaí Fitness 500ml + Whey + Banana + Sem açúcar"},
		},
	},
}

func (c catalog) pick(intn func(int) int) Sample {
	if len(c.paired) > 0 {
		return c.paired[intn(len(c.paired))]
	}
	return Sample{
		ClientName:  c.clients[intn(len(c.clients))],
		Description: c.items[intn(len(c.items))],
	}
}
