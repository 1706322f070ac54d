package postgres

import (
	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"gorm.io/datatypes"
)

func toProductDomain(m *model.ProductModel) *entity.Product {
	stock := m.StockBySize.Data()
	if stock == nil {
		stock = map[string]int{}
	}

	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		MRP:         m.MRP,
		Sizes:       []string(m.Sizes),
		StockBySize: stock,
		Images:      []string(m.Images),
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromOrderDomain(o *entity.Order) *model.OrderModel {
	m := &model.OrderModel{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
		Status:      o.Status.String(),
		PaymentID:   o.PaymentID,
		PaymentRef:  optionalString(o.PaymentRef),
		OfferCode:   optionalString(o.OfferCode),
		Discount:    o.Discount,
		ShippingDetails: datatypes.NewJSONType(model.ShippingDetailsJSON{
			Name:    o.ShippingDetails.Name,
			Email:   o.ShippingDetails.Email,
			Phone:   o.ShippingDetails.Phone,
			Address: o.ShippingDetails.Address,
			Pincode: o.ShippingDetails.Pincode,
			City:    o.ShippingDetails.City,
			State:   o.ShippingDetails.State,
		}),
		ShiprocketOrderID:    optionalString(o.ShiprocketOrderID),
		TrackingURL:          optionalString(o.TrackingURL),
		ShippingAttempts:     o.ShippingAttempts,
		ReservationExpiresAt: o.ReservationExpiresAt,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}

	m.Items = make([]*model.OrderItemModel, 0, len(o.Items))
	for _, item := range o.Items {
		m.Items = append(m.Items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
		})
	}

	return m
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	details := m.ShippingDetails.Data()
	o := &entity.Order{
		ID:          m.ID,
		UserID:      m.UserID,
		TotalAmount: m.TotalAmount,
		Currency:    m.Currency,
		Status:      entity.OrderStatus(m.Status),
		PaymentID:   m.PaymentID,
		PaymentRef:  derefString(m.PaymentRef),
		OfferCode:   derefString(m.OfferCode),
		Discount:    m.Discount,
		ShippingDetails: entity.ShippingDetails{
			Name:    details.Name,
			Email:   details.Email,
			Phone:   details.Phone,
			Address: details.Address,
			Pincode: details.Pincode,
			City:    details.City,
			State:   details.State,
		},
		ShiprocketOrderID:    derefString(m.ShiprocketOrderID),
		TrackingURL:          derefString(m.TrackingURL),
		ShippingAttempts:     m.ShippingAttempts,
		ReservationExpiresAt: m.ReservationExpiresAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	o.Items = make([]*entity.OrderItem, 0, len(m.Items))
	for _, item := range m.Items {
		o.Items = append(o.Items, &entity.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
		})
	}

	return o
}

func toOfferCodeDomain(m *model.OfferCodeModel) *entity.OfferCode {
	return &entity.OfferCode{
		ID:           m.ID,
		Code:         m.Code,
		Discount:     m.Discount,
		ExpiryDate:   m.ExpiryDate,
		IsFirstOrder: m.IsFirstOrder,
		CreatedAt:    m.CreatedAt,
	}
}

func toCartDomain(m *model.CartModel) *entity.Cart {
	cart := &entity.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     make([]*entity.CartItem, 0, len(m.Items)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, item := range m.Items {
		cart.Items = append(cart.Items, toCartItemDomain(item))
	}

	return cart
}

func toCartItemDomain(m *model.CartItemModel) *entity.CartItem {
	return &entity.CartItem{
		ID:        m.ID,
		CartID:    m.CartID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Price:     m.Price,
		Size:      m.Size,
	}
}

func fromCartItemDomain(item *entity.CartItem) *model.CartItemModel {
	return &model.CartItemModel{
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entity.Role(m.Role),
		IsVerified:   m.IsVerified,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
