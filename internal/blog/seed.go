package blog

import (
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// seedPosts はホスト型DBが未設定または空のときに使うシード記事を返す。
// 内容は公開当初からブログに載っている定番の技術記事。
func seedPosts() []*model.Post {
	return []*model.Post{
		{
			ID:      "react-hooks-guide",
			Slug:    "react-hooks-guide",
			Title:   "React Hooks 完全指南",
			Excerpt: "深入了解 React Hooks 的使用方法和最佳实践，包括 useState、useEffect、useContext 等常用 Hook 的详细介绍。",
			Content: `# React Hooks 完全指南

React Hooks 是 React 16.8 引入的新特性，它让你在不编写 class 的情况下使用 state 以及其他的 React 特性。

## useState Hook

useState 是最基本的 Hook，它让函数组件拥有状态：

` + "```javascript" + `
import React, { useState } from 'react';

function Counter() {
  const [count, setCount] = useState(0);

  return (
    <div>
      <p>You clicked {count} times</p>
      <button onClick={() => setCount(count + 1)}>
        Click me
      </button>
    </div>
  );
}
` + "```" + `

## 自定义 Hook

你可以创建自己的 Hook 来复用状态逻辑：

` + "```javascript" + `
function useCounter(initialValue = 0) {
  const [count, setCount] = useState(initialValue);

  const increment = () => setCount(count + 1);
  const decrement = () => setCount(count - 1);
  const reset = () => setCount(initialValue);

  return { count, increment, decrement, reset };
}
` + "```" + `

## 总结

React Hooks 提供了一种更简洁、更灵活的方式来编写 React 组件。通过合理使用 Hooks，我们可以写出更易维护和测试的代码。`,
			Published: true,
			Tags:      []string{"React", "JavaScript", "Frontend"},
			Author:    "博主",
			ReadTime:  8,
			CreatedAt: seedDate("2024-01-20"),
			UpdatedAt: seedDate("2024-01-20"),
		},
		{
			ID:      "nextjs-app-router",
			Slug:    "nextjs-app-router",
			Title:   "Next.js App Router 深度解析",
			Excerpt: "探索 Next.js 13+ 的 App Router 新特性，了解如何使用新的路由系统构建现代 Web 应用。",
			Content: `# Next.js App Router 深度解析

Next.js 13 引入了全新的 App Router，基于 React Server Components 构建，提供了更强大的路由功能。

## 文件系统路由

App Router 使用文件系统进行路由：

` + "```" + `
app/
  page.tsx          # /
  about/
    page.tsx        # /about
  blog/
    page.tsx        # /blog
    [slug]/
      page.tsx      # /blog/[slug]
` + "```" + `

## Server Components

默认情况下，App Router 中的组件都是 Server Components：

` + "```typescript" + `
// app/page.tsx
async function getData() {
  const res = await fetch('https://api.example.com/data')
  return res.json()
}

export default async function Page() {
  const data = await getData()
  return <main>{data.title}</main>
}
` + "```" + `

## 总结

App Router 为 Next.js 应用带来了更好的性能和开发体验，值得深入学习和使用。`,
			Published: true,
			Tags:      []string{"Next.js", "React", "SSR"},
			Author:    "博主",
			ReadTime:  12,
			CreatedAt: seedDate("2024-01-18"),
			UpdatedAt: seedDate("2024-01-18"),
		},
		{
			ID:      "typescript-best-practices",
			Slug:    "typescript-best-practices",
			Title:   "TypeScript 最佳实践",
			Excerpt: "分享 TypeScript 开发中的最佳实践，包括类型定义、泛型使用、配置优化等方面的经验。",
			Content: `# TypeScript 最佳实践

TypeScript 为 JavaScript 添加了静态类型检查，让我们能够写出更安全、更易维护的代码。

## 类型定义

### 接口 vs 类型别名

` + "```typescript" + `
// 接口 - 推荐用于对象类型
interface User {
  id: number;
  name: string;
  email: string;
}

// 类型别名 - 推荐用于联合类型、原始类型等
type Status = 'loading' | 'success' | 'error';
type ID = string | number;
` + "```" + `

## 实用类型

TypeScript 提供了许多实用的内置类型：

` + "```typescript" + `
// Partial - 所有属性变为可选
type PartialUser = Partial<User>;

// Pick - 选择特定属性
type UserBasic = Pick<User, 'id' | 'name'>;

// Omit - 排除特定属性
type UserWithoutId = Omit<User, 'id'>;
` + "```" + `

## 总结

遵循这些最佳实践，可以让你的 TypeScript 代码更加健壮和易维护。`,
			Published: true,
			Tags:      []string{"TypeScript", "JavaScript", "Best Practices"},
			Author:    "博主",
			ReadTime:  10,
			CreatedAt: seedDate("2024-01-15"),
			UpdatedAt: seedDate("2024-01-15"),
		},
		{
			ID:      "css-grid-flexbox",
			Slug:    "css-grid-flexbox",
			Title:   "CSS Grid 与 Flexbox 布局指南",
			Excerpt: "详细对比 CSS Grid 和 Flexbox 的使用场景，学习如何选择合适的布局方案。",
			Content: `# CSS Grid 与 Flexbox 布局指南

CSS Grid 和 Flexbox 是现代 CSS 布局的两大利器，了解它们的特点和使用场景非常重要。

## Flexbox - 一维布局

Flexbox 适合处理一维布局（行或列）：

` + "```css" + `
.container {
  display: flex;
  justify-content: space-between;
  align-items: center;
  gap: 1rem;
}
` + "```" + `

## CSS Grid - 二维布局

CSS Grid 适合处理二维布局（行和列）：

` + "```css" + `
.grid-container {
  display: grid;
  grid-template-columns: repeat(3, 1fr);
  grid-template-rows: auto 1fr auto;
  gap: 1rem;
}
` + "```" + `

## 选择指南

### 使用 Flexbox 当：
- 需要一维布局（行或列）
- 需要内容驱动的布局
- 需要对齐和分布空间

### 使用 Grid 当：
- 需要二维布局（行和列）
- 需要精确控制布局
- 需要重叠元素

## 总结

Flexbox 和 Grid 各有优势，在实际项目中经常需要结合使用。理解它们的特点，选择合适的布局方案是关键。`,
			Published: true,
			Tags:      []string{"CSS", "Layout", "Frontend"},
			Author:    "博主",
			ReadTime:  15,
			CreatedAt: seedDate("2024-01-12"),
			UpdatedAt: seedDate("2024-01-12"),
		},
		{
			ID:      "javascript-es2024",
			Slug:    "javascript-es2024",
			Title:   "JavaScript ES2024 新特性",
			Excerpt: "了解 JavaScript ES2024 的最新特性，包括新的语法、API 和改进。",
			Content: `# JavaScript ES2024 新特性

ES2024 为 JavaScript 带来了许多令人兴奋的新特性，让我们一起来了解这些改进。

## Array.prototype.toSorted()

新的数组方法，返回排序后的新数组，不修改原数组：

` + "```javascript" + `
const numbers = [3, 1, 4, 1, 5];
const sorted = numbers.toSorted(); // [1, 1, 3, 4, 5]
console.log(numbers); // [3, 1, 4, 1, 5] - 原数组未改变
` + "```" + `

## Object.groupBy()

根据回调函数的返回值对数组元素进行分组：

` + "```javascript" + `
const people = [
  { name: 'Alice', age: 25, city: 'New York' },
  { name: 'Bob', age: 30, city: 'London' }
];

const groupedByAge = Object.groupBy(people, person => person.age);
` + "```" + `

## Promise.withResolvers()

提供了一种更简洁的方式来创建 Promise：

` + "```javascript" + `
const { promise, resolve, reject } = Promise.withResolvers();
` + "```" + `

## 总结

ES2024 的这些新特性主要关注于提供更好的不可变操作支持和数据处理能力。这些特性让 JavaScript 代码更加函数式，也更容易维护。`,
			Published: true,
			Tags:      []string{"JavaScript", "ES2024", "New Features"},
			Author:    "博主",
			ReadTime:  12,
			CreatedAt: seedDate("2024-01-10"),
			UpdatedAt: seedDate("2024-01-10"),
		},
		{
			ID:      "web-performance-optimization",
			Slug:    "web-performance-optimization",
			Title:   "Web 性能优化实战指南",
			Excerpt: "全面的 Web 性能优化指南，涵盖加载优化、渲染优化、网络优化等多个方面。",
			Content: `# Web 性能优化实战指南

Web 性能优化是前端开发中的重要话题，好的性能能显著提升用户体验。

## 加载性能优化

### 预加载策略

` + "```html" + `
<!-- DNS 预解析 -->
<link rel="dns-prefetch" href="//example.com">

<!-- 预加载关键资源 -->
<link rel="preload" href="/critical.css" as="style">
<link rel="preload" href="/hero-image.jpg" as="image">
` + "```" + `

## 渲染性能优化

### 避免布局抖动

` + "```css" + `
/* 使用 transform 而不是改变 position */
.element {
  transform: translateX(100px);
}

/* 使用 will-change 提示浏览器 */
.animated-element {
  will-change: transform;
}
` + "```" + `

## 监控和测量

### Core Web Vitals

` + "```javascript" + `
// 测量 LCP (Largest Contentful Paint)
new PerformanceObserver((entryList) => {
  for (const entry of entryList.getEntries()) {
    console.log('LCP:', entry.startTime);
  }
}).observe({ entryTypes: ['largest-contentful-paint'] });
` + "```" + `

## 总结

Web 性能优化是一个持续的过程，需要从多个维度进行考虑。

记住：
1. 测量比猜测更重要
2. 用户体验比技术指标更重要
3. 持续优化比一次性优化更重要`,
			Published: true,
			Tags:      []string{"Performance", "Web", "Optimization"},
			Author:    "博主",
			ReadTime:  20,
			CreatedAt: seedDate("2024-01-08"),
			UpdatedAt: seedDate("2024-01-08"),
		},
	}
}

// seedDate は日付のみのシード値をUTCの時刻としてパースする。
func seedDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
