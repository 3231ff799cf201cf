package util

import "strconv"

// ParseUint 解析路径或查询参数中的无符号整数
func ParseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
