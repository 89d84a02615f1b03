package archive

import "fmt"

// ScheduleRequest splits PageCount pages of PageSize pokemon, starting at
// StartOffset, into archive requests that can run in parallel.
type ScheduleRequest struct {
	PageSize    int32 `json:"pageSize"`
	StartOffset int32 `json:"startOffset"`
	PageCount   int32 `json:"pageCount"`
}

func Schedule(request ScheduleRequest) ([]Request, error) {
	if request.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", request.PageSize)
	}
	if request.PageCount < 0 || request.StartOffset < 0 {
		return nil, fmt.Errorf("page count and start offset must not be negative")
	}
	result := make([]Request, 0, request.PageCount)
	for i := int32(0); i < request.PageCount; i++ {
		result = append(result, Request{
			Limit:  request.PageSize,
			Offset: request.StartOffset + i*request.PageSize,
		})
	}
	return result, nil
}
