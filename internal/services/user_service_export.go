package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/authuser-service/internal/models"
	"github.com/SAP-F-2025/authuser-service/internal/repositories"
)

// exportPageSize must stay within the repository page cap or List will
// silently shrink the page underneath the loop.
const exportPageSize = repositories.MaxPageSize

var exportHeader = []string{
	"User ID", "Username", "Email", "Full Name", "Phone Number",
	"Tax ID", "Status", "Type", "Created At", "Updated At",
}

// ExportUsers renders the filtered user set as an xlsx workbook
func (s *userService) ExportUsers(ctx context.Context, filters repositories.UserFilters) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	fetched := 0
	page := repositories.PageRequest{Size: exportPageSize, SortBy: "created_at"}.Normalize()
	for {
		users, total, err := s.repo.User().List(ctx, filters, page)
		if err != nil {
			return nil, fmt.Errorf("failed to load users for export: %w", err)
		}

		for _, user := range users {
			if err := writeUserRow(f, sheet, row, user); err != nil {
				return nil, err
			}
			row++
		}

		fetched += len(users)
		if len(users) == 0 || int64(fetched) >= total {
			break
		}
		page.Page++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Users exported", "rows", row-2)

	return buf.Bytes(), nil
}

func writeUserRow(f *excelize.File, sheet string, row int, user *models.User) error {
	values := []interface{}{
		user.UserID.String(),
		user.Username,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.TaxID,
		string(user.Status),
		string(user.Type),
		user.CreatedAt.Format("2006-01-02 15:04:05"),
		user.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	return nil
}
