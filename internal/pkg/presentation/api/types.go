package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
)

type meta struct {
	TotalRecords uint64  `json:"totalRecords"`
	Offset       *uint64 `json:"offset,omitempty"`
	Limit        *uint64 `json:"limit,omitempty"`
	Count        uint64  `json:"count"`
}

type links struct {
	Self  *string `json:"self,omitempty"`
	First *string `json:"first,omitempty"`
	Prev  *string `json:"prev,omitempty"`
	Next  *string `json:"next,omitempty"`
	Last  *string `json:"last,omitempty"`
}

type ApiResponse struct {
	Meta  *meta  `json:"meta,omitempty"`
	Data  any    `json:"data"`
	Links *links `json:"links,omitempty"`
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

func newCollectionResponse[T any](u *url.URL, c types.Collection[T]) ApiResponse {
	data := c.Data
	if data == nil {
		data = []T{}
	}

	return ApiResponse{
		Meta: &meta{
			TotalRecords: c.TotalCount,
			Offset:       &c.Offset,
			Limit:        &c.Limit,
			Count:        c.Count,
		},
		Data:  data,
		Links: createLinks(u, c.Offset, c.Limit, c.TotalCount),
	}
}

func createLinks(u *url.URL, offset, limit, total uint64) *links {
	if limit == 0 {
		return nil
	}

	page := func(o uint64) *string {
		q := u.Query()
		q.Set("offset", strconv.FormatUint(o, 10))
		q.Set("limit", strconv.FormatUint(limit, 10))
		s := fmt.Sprintf("%s?%s", u.Path, q.Encode())
		return &s
	}

	l := &links{
		Self:  page(offset),
		First: page(0),
	}

	if offset > 0 {
		l.Prev = page(offset - min(offset, limit))
	}

	if offset+limit < total {
		l.Next = page(offset + limit)
	}

	if total > 0 {
		l.Last = page(((total - 1) / limit) * limit)
	}

	return l
}
